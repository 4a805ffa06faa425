package router

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"examparse/internal/config"
	"examparse/internal/handler"
	"examparse/internal/middleware"
)

// multipartOverhead is headroom for multipart framing on top of the file limit.
const multipartOverhead = 1 << 20

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	logger *slog.Logger,
	extractionH *handler.ExtractionHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = 32 << 20

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	uploadLimit := middleware.MaxBodySize(cfg.Upload.MaxBytes() + multipartOverhead)

	// Original single-shot endpoint used by the bundled frontend
	r.POST("/upload", uploadLimit, extractionH.LegacyUpload)

	v1 := r.Group("/api/v1")
	extractions := v1.Group("/extractions")
	extractions.POST("", uploadLimit, extractionH.Create)
	extractions.GET("", extractionH.List)
	extractions.GET("/:id", extractionH.GetByID)
	extractions.GET("/:id/export", extractionH.Export)
	extractions.GET("/:id/source", extractionH.GetSourceURL)
	extractions.DELETE("/:id", extractionH.Delete)

	if cfg.Server.StaticDir != "" {
		r.NoRoute(spa(cfg.Server.StaticDir))
	}

	return r
}

// spa serves files from dir and falls back to index.html so client-side
// routes resolve. API paths and non-GET requests still get a JSON 404.
func spa(dir string) gin.HandlerFunc {
	index := filepath.Join(dir, "index.html")
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			handler.RespondError(c, http.StatusNotFound, "NOT_FOUND", "route not found")
			return
		}
		name := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+c.Request.URL.Path)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			c.File(name)
			return
		}
		c.File(index)
	}
}
