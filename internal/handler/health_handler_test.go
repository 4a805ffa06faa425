package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"examparse/internal/handler"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"reachable", nil, http.StatusOK},
		{"unreachable", errors.New("connection refused"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHealthHandler(pingFunc(func(context.Context) error { return tt.err }))
			r := gin.New()
			r.GET("/readyz", h.Readiness)
			r.GET("/healthz", h.Liveness)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/readyz", http.NoBody)
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)

			w = httptest.NewRecorder()
			req, _ = http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}
