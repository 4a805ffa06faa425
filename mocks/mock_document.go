package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"examparse/internal/domain"
)

// MockDocumentValidator is a mock implementation of port.DocumentValidator.
type MockDocumentValidator struct {
	mock.Mock
}

func (m *MockDocumentValidator) Validate(rs io.ReadSeeker) (int, error) {
	args := m.Called(rs)
	return args.Int(0), args.Error(1)
}

// MockDocumentProcessor is a mock implementation of port.DocumentProcessor.
type MockDocumentProcessor struct {
	mock.Mock
}

func (m *MockDocumentProcessor) Process(ctx context.Context, path string) (*domain.ExtractionResult, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResult), args.Error(1)
}
