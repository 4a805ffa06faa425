package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"examparse/internal/domain"
	"examparse/internal/port"
)

// extractionRow mirrors the extractions table. Questions and warnings are JSONB.
type extractionRow struct {
	ID            uuid.UUID       `db:"id"`
	OriginalName  string          `db:"original_name"`
	FileSize      int64           `db:"file_size"`
	PageCount     int             `db:"page_count"`
	QuestionCount int             `db:"question_count"`
	Questions     json.RawMessage `db:"questions"`
	Warnings      json.RawMessage `db:"warnings"`
	SourceKey     string          `db:"source_key"`
	ResultKey     string          `db:"result_key"`
	CreatedAt     time.Time       `db:"created_at"`
}

func toRow(e *domain.Extraction) (*extractionRow, error) {
	questions := e.Questions
	if questions == nil {
		questions = []domain.QuestionRecord{}
	}
	warnings := e.Warnings
	if warnings == nil {
		warnings = []domain.Warning{}
	}
	q, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("encoding questions: %w", err)
	}
	w, err := json.Marshal(warnings)
	if err != nil {
		return nil, fmt.Errorf("encoding warnings: %w", err)
	}
	return &extractionRow{
		ID:            e.ID,
		OriginalName:  e.OriginalName,
		FileSize:      e.FileSize,
		PageCount:     e.PageCount,
		QuestionCount: e.QuestionCount,
		Questions:     q,
		Warnings:      w,
		SourceKey:     e.SourceKey,
		ResultKey:     e.ResultKey,
		CreatedAt:     e.CreatedAt,
	}, nil
}

func (r *extractionRow) toDomain() (*domain.Extraction, error) {
	e := &domain.Extraction{
		ID:            r.ID,
		OriginalName:  r.OriginalName,
		FileSize:      r.FileSize,
		PageCount:     r.PageCount,
		QuestionCount: r.QuestionCount,
		SourceKey:     r.SourceKey,
		ResultKey:     r.ResultKey,
		CreatedAt:     r.CreatedAt,
	}
	if err := json.Unmarshal(r.Questions, &e.Questions); err != nil {
		return nil, fmt.Errorf("decoding questions of %s: %w", r.ID, err)
	}
	if err := json.Unmarshal(r.Warnings, &e.Warnings); err != nil {
		return nil, fmt.Errorf("decoding warnings of %s: %w", r.ID, err)
	}
	return e, nil
}

type extractionRepo struct {
	db *sqlx.DB
}

// NewExtractionRepo creates a new PostgreSQL-backed ExtractionRepository.
func NewExtractionRepo(db *sqlx.DB) port.ExtractionRepository {
	return &extractionRepo{db: db}
}

func (r *extractionRepo) Create(ctx context.Context, e *domain.Extraction) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	row, err := toRow(e)
	if err != nil {
		return fmt.Errorf("extractionRepo.Create: %w", err)
	}

	query := `INSERT INTO extractions
		(id, original_name, file_size, page_count, question_count,
		 questions, warnings, source_key, result_key, created_at)
		VALUES (:id, :original_name, :file_size, :page_count, :question_count,
		 :questions, :warnings, :source_key, :result_key, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("extractionRepo.Create: %w", err)
	}
	return nil
}

func (r *extractionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Extraction, error) {
	var row extractionRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM extractions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("extractionRepo.GetByID: %w", err)
	}
	return row.toDomain()
}

func (r *extractionRepo) List(ctx context.Context, offset, limit int) ([]domain.Extraction, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM extractions"); err != nil {
		return nil, 0, fmt.Errorf("extractionRepo.List count: %w", err)
	}

	var rows []extractionRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM extractions
		 ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("extractionRepo.List: %w", err)
	}

	out := make([]domain.Extraction, 0, len(rows))
	for i := range rows {
		e, err := rows[i].toDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("extractionRepo.List: %w", err)
		}
		out = append(out, *e)
	}
	return out, total, nil
}

func (r *extractionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM extractions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("extractionRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *extractionRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
