package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"examparse/internal/domain"
)

func TestDocumentOpenError_Is(t *testing.T) {
	cause := errors.New("no xref table")
	err := fmt.Errorf("processing: %w", domain.NewDocumentOpenError("paper.pdf", cause))

	assert.ErrorIs(t, err, domain.ErrDocumentOpen)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "processing: opening paper.pdf: no xref table", err.Error())

	var openErr *domain.DocumentOpenError
	assert.True(t, errors.As(err, &openErr))
	assert.Equal(t, "paper.pdf", openErr.Path)
}
