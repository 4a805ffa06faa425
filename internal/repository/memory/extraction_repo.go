// Package memory provides in-process repositories for single-node deployments
// and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"examparse/internal/domain"
	"examparse/internal/port"
)

type extractionRepo struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]domain.Extraction
	order      []uuid.UUID // insertion order, oldest first
	maxEntries int
}

// NewExtractionRepo creates an empty in-memory ExtractionRepository holding at
// most maxEntries extractions. Once full, each Create evicts the oldest one.
// maxEntries <= 0 disables the cap.
func NewExtractionRepo(maxEntries int) port.ExtractionRepository {
	return &extractionRepo{
		byID:       make(map[uuid.UUID]domain.Extraction),
		maxEntries: maxEntries,
	}
}

func (r *extractionRepo) Create(_ context.Context, e *domain.Extraction) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[e.ID]; !exists {
		r.order = append(r.order, e.ID)
	}
	r.byID[e.ID] = *e
	for r.maxEntries > 0 && len(r.order) > r.maxEntries {
		delete(r.byID, r.order[0])
		r.order = r.order[1:]
	}
	return nil
}

func (r *extractionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Extraction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (r *extractionRepo) List(_ context.Context, offset, limit int) ([]domain.Extraction, int, error) {
	r.mu.RLock()
	all := make([]domain.Extraction, 0, len(r.byID))
	for _, e := range r.byID {
		all = append(all, e)
	}
	r.mu.RUnlock()

	// newest first, ties broken by id so pages are stable
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID.String() < all[j].ID.String()
	})

	total := len(all)
	if offset >= total {
		return []domain.Extraction{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *extractionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *extractionRepo) Ping(context.Context) error {
	return nil
}
