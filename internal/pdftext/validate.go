package pdftext

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Validator checks uploads with pdfcpu before text extraction.
type Validator struct {
	conf *model.Configuration
}

// NewValidator creates a Validator using pdfcpu's relaxed validation mode.
func NewValidator() *Validator {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Validator{conf: conf}
}

// Validate reports the page count of the PDF in rs. rs is rewound before
// returning.
func (v *Validator) Validate(rs io.ReadSeeker) (int, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	n, err := api.PageCount(rs, v.conf)
	if err != nil {
		return 0, fmt.Errorf("pdfcpu page count: %w", err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return n, nil
}
