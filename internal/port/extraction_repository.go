package port

import (
	"context"

	"github.com/google/uuid"

	"examparse/internal/domain"
)

// ExtractionRepository persists finished extractions.
type ExtractionRepository interface {
	Create(ctx context.Context, extraction *domain.Extraction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Extraction, error)
	List(ctx context.Context, offset, limit int) ([]domain.Extraction, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}
