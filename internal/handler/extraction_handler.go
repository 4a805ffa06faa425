package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"examparse/internal/domain"
	"examparse/internal/export"
	"examparse/internal/middleware"
	"examparse/internal/service"
)

// ExtractionHandler handles paper upload and extraction history endpoints.
type ExtractionHandler struct {
	extractionService service.ExtractionService
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(extractionService service.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{extractionService: extractionService}
}

// LegacyUploadResponse is the body returned by POST /upload.
type LegacyUploadResponse struct {
	Questions []domain.QuestionRecord `json:"questions"`
}

// formFile reads the "file" multipart field. A part sent with an empty file
// name arrives as a plain form value and is reported as ErrEmptyFileName.
func formFile(c *gin.Context) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := c.Request.FormFile("file")
	if err == nil {
		if header.Filename == "" {
			_ = file.Close()
			return nil, nil, domain.ErrEmptyFileName
		}
		return file, header, nil
	}
	if errors.Is(err, http.ErrMissingFile) {
		if form := c.Request.MultipartForm; form != nil && len(form.Value["file"]) > 0 {
			return nil, nil, domain.ErrEmptyFileName
		}
		return nil, nil, domain.ErrMissingFile
	}
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return nil, nil, domain.ErrFileTooLarge
	}
	return nil, nil, domain.ErrMissingFile
}

// LegacyUpload handles POST /upload
// @Summary Extract questions from a paper
// @Description Upload a two-column exam PDF and receive its questions. Kept for existing frontend clients.
// @Tags extractions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF exam paper"
// @Success 200 {object} LegacyUploadResponse
// @Failure 400 {object} map[string]string "No file uploaded or no selected file"
// @Failure 422 {object} map[string]string "Document could not be opened"
// @Failure 500 {object} map[string]string "Processing failed"
// @Router /upload [post]
func (h *ExtractionHandler) LegacyUpload(c *gin.Context) {
	file, header, err := formFile(c)
	if err != nil {
		legacyError(c, err)
		return
	}
	defer func() { _ = file.Close() }()

	extraction, err := h.extractionService.Extract(c.Request.Context(), service.ExtractionInput{File: file, Header: header})
	if err != nil {
		legacyError(c, err)
		return
	}

	c.JSON(http.StatusOK, LegacyUploadResponse{Questions: extraction.Questions})
}

// legacyError writes {"error": message} with the mapped status.
func legacyError(c *gin.Context, err error) {
	status, _, msg := MapDomainError(err)
	if status >= 500 {
		slog.Error("upload failed", "request_id", middleware.GetRequestID(c), "error", err)
	}
	c.JSON(status, gin.H{"error": msg})
}

// Create handles POST /api/v1/extractions
// @Summary Extract and store questions from a paper
// @Tags extractions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF exam paper"
// @Success 201 {object} APIResponse{data=domain.Extraction}
// @Failure 400 {object} APIResponse "Missing file or unsupported type"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 422 {object} APIResponse "Document could not be opened"
// @Router /extractions [post]
func (h *ExtractionHandler) Create(c *gin.Context) {
	file, header, err := formFile(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	defer func() { _ = file.Close() }()

	extraction, err := h.extractionService.Extract(c.Request.Context(), service.ExtractionInput{File: file, Header: header})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, extraction)
}

// List handles GET /api/v1/extractions
// @Summary List extractions, newest first
// @Tags extractions
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Extraction}
// @Router /extractions [get]
func (h *ExtractionHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	extractions, total, err := h.extractionService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, extractions, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/extractions/:id
// @Summary Get one extraction
// @Tags extractions
// @Produce json
// @Param id path string true "Extraction ID"
// @Success 200 {object} APIResponse{data=domain.Extraction}
// @Failure 404 {object} APIResponse
// @Router /extractions/{id} [get]
func (h *ExtractionHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	extraction, err := h.extractionService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, extraction)
}

// Export handles GET /api/v1/extractions/:id/export
// @Summary Download questions as a spreadsheet
// @Tags extractions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/csv
// @Param id path string true "Extraction ID"
// @Param format query string false "xlsx or csv" default(xlsx)
// @Success 200 {file} file
// @Failure 400 {object} APIResponse "Unsupported format"
// @Failure 404 {object} APIResponse
// @Router /extractions/{id}/export [get]
func (h *ExtractionHandler) Export(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	file, err := h.extractionService.Export(c.Request.Context(), id, format)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// GetSourceURL handles GET /api/v1/extractions/:id/source
// @Summary Get a presigned download URL for the archived paper
// @Tags extractions
// @Produce json
// @Param id path string true "Extraction ID"
// @Success 200 {object} APIResponse{data=map[string]string}
// @Failure 404 {object} APIResponse "Not found or archive disabled"
// @Router /extractions/{id}/source [get]
func (h *ExtractionHandler) GetSourceURL(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	url, err := h.extractionService.GetSourceURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}

// Delete handles DELETE /api/v1/extractions/:id
// @Summary Delete an extraction and its archived objects
// @Tags extractions
// @Produce json
// @Param id path string true "Extraction ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /extractions/{id} [delete]
func (h *ExtractionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.extractionService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "extraction deleted"})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid extraction ID")
		return uuid.Nil, false
	}
	return id, true
}
