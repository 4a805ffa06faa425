package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"examparse/internal/config"
	"examparse/internal/domain"
	"examparse/internal/export"
	"examparse/internal/port"
)

// ExtractionInput is the DTO for an uploaded paper.
type ExtractionInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// ExtractionService defines the extraction contract.
type ExtractionService interface {
	Extract(ctx context.Context, input ExtractionInput) (*domain.Extraction, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Extraction, error)
	List(ctx context.Context, offset, limit int) ([]domain.Extraction, int, error)
	Export(ctx context.Context, id uuid.UUID, format domain.ExportFormat) (*export.File, error)
	GetSourceURL(ctx context.Context, id uuid.UUID) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type extractionService struct {
	repo      port.ExtractionRepository
	storage   port.ObjectStorage
	validator port.DocumentValidator
	processor port.DocumentProcessor
	uploadCfg *config.UploadConfig
	s3Cfg     *config.S3Config
	logger    *slog.Logger
}

// NewExtractionService creates a new ExtractionService implementation.
// storage may be nil, in which case nothing is archived.
func NewExtractionService(
	repo port.ExtractionRepository,
	storage port.ObjectStorage,
	validator port.DocumentValidator,
	processor port.DocumentProcessor,
	uploadCfg *config.UploadConfig,
	s3Cfg *config.S3Config,
	logger *slog.Logger,
) ExtractionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &extractionService{
		repo:      repo,
		storage:   storage,
		validator: validator,
		processor: processor,
		uploadCfg: uploadCfg,
		s3Cfg:     s3Cfg,
		logger:    logger,
	}
}

func (s *extractionService) Extract(ctx context.Context, input ExtractionInput) (*domain.Extraction, error) {
	if input.File == nil || input.Header == nil {
		return nil, domain.ErrMissingFile
	}
	if input.Header.Filename == "" {
		return nil, domain.ErrEmptyFileName
	}

	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	if input.Header.Size > s.uploadCfg.MaxBytes() {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if _, ok := domain.AllowedContentTypes[http.DetectContentType(buf[:n])]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	// pdfcpu is stricter than the text reader; a rejected file is still handed
	// to the pipeline, which reports ErrDocumentOpen if it cannot read it either.
	pageCount, err := s.validator.Validate(input.File)
	if err != nil {
		s.logger.Warn("extractionService.Extract: pdf validation failed, trying extraction anyway",
			"file", input.Header.Filename, "error", err)
		if _, err := input.File.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seeking file: %w", err)
		}
	}

	id := uuid.New()
	path, err := s.saveTemp(id, ext, input.File)
	if err != nil {
		return nil, err
	}
	defer s.removeTemp(path)

	s.logger.Info("extractionService.Extract: processing upload",
		"id", id, "file", input.Header.Filename, "size", input.Header.Size, "pages", pageCount)

	result, err := s.processor.Process(ctx, path)
	if err != nil {
		s.logger.Error("extractionService.Extract: processing failed", "id", id, "error", err)
		return nil, err
	}

	extraction := &domain.Extraction{
		ID:            id,
		OriginalName:  input.Header.Filename,
		FileSize:      input.Header.Size,
		PageCount:     result.PageCount,
		QuestionCount: len(result.Questions),
		Questions:     result.Questions,
		Warnings:      result.Warnings,
		CreatedAt:     time.Now().UTC(),
	}

	if s.storage != nil {
		s.archive(ctx, extraction, path, domain.AllowedFileTypes[fileType])
	}

	if err := s.repo.Create(ctx, extraction); err != nil {
		s.logger.Error("extractionService.Extract: failed to store extraction", "id", id, "error", err)
		return nil, fmt.Errorf("storing extraction: %w", err)
	}
	return extraction, nil
}

// saveTemp writes the upload to an isolated file under the upload directory.
func (s *extractionService) saveTemp(id uuid.UUID, ext string, src io.Reader) (string, error) {
	if err := os.MkdirAll(s.uploadCfg.Dir, 0o750); err != nil {
		return "", fmt.Errorf("creating upload dir: %w", err)
	}
	path := filepath.Join(s.uploadCfg.Dir, id.String()+"."+ext)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	if _, err := io.Copy(f, src); err != nil {
		_ = f.Close()
		s.removeTemp(path)
		return "", fmt.Errorf("writing upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		s.removeTemp(path)
		return "", fmt.Errorf("closing upload file: %w", err)
	}
	return path, nil
}

// removeTemp deletes a transient upload. Failures are logged only.
func (s *extractionService) removeTemp(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("extractionService: failed to remove upload", "path", path, "error", err)
	}
}

// archive uploads the source paper and the result JSON concurrently. An
// archive failure leaves the extraction without keys but does not fail it.
func (s *extractionService) archive(ctx context.Context, e *domain.Extraction, path, contentType string) {
	prefix := fmt.Sprintf("extractions/%s", e.ID)
	sourceKey := prefix + "/source.pdf"
	resultKey := prefix + "/result.json"

	payload, err := json.Marshal(domain.ExtractionResult{
		Questions: e.Questions,
		Warnings:  e.Warnings,
		PageCount: e.PageCount,
	})
	if err != nil {
		s.logger.Warn("extractionService.archive: encoding result failed", "id", e.ID, "error", err)
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = s.storage.Put(gctx, port.PutInput{Key: sourceKey, Body: f, ContentType: contentType})
		return err
	})
	g.Go(func() error {
		_, err := s.storage.Put(gctx, port.PutInput{
			Key:         resultKey,
			Body:        bytes.NewReader(payload),
			ContentType: "application/json",
		})
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("extractionService.archive: upload failed", "id", e.ID, "error", err)
		return
	}
	e.SourceKey = sourceKey
	e.ResultKey = resultKey
}

func (s *extractionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Extraction, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *extractionService) List(ctx context.Context, offset, limit int) ([]domain.Extraction, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *extractionService) Export(ctx context.Context, id uuid.UUID, format domain.ExportFormat) (*export.File, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return export.Render(e, format)
}

func (s *extractionService) GetSourceURL(ctx context.Context, id uuid.UUID) (string, error) {
	if s.storage == nil {
		return "", domain.ErrStorageDisabled
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if e.SourceKey == "" {
		return "", domain.ErrNotFound
	}
	return s.storage.PresignGet(ctx, e.SourceKey, time.Duration(s.s3Cfg.PresignExpiry)*time.Second)
}

func (s *extractionService) Delete(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("extractionService.Delete: deleting extraction", "id", id)

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if s.storage != nil {
		for _, key := range []string{e.SourceKey, e.ResultKey} {
			if key == "" {
				continue
			}
			if err := s.storage.Delete(ctx, key); err != nil {
				s.logger.Error("extractionService.Delete: failed to delete archived object", "key", key, "error", err)
				return fmt.Errorf("deleting from storage: %w", err)
			}
		}
	}

	return s.repo.Delete(ctx, id)
}
