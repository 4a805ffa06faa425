// Package extract turns two-column exam papers into multiple-choice question
// records.
//
// The pipeline runs in three stages, each consuming the previous output:
//
//   - ExtractColumns reads every page after the cover page, left half then
//     right half, through a FooterFilter.
//   - FooterFilter drops publisher boilerplate lines.
//   - Segmenter splits the combined text into questions and labeled options.
//
// Usage:
//
//	p := extract.New(extract.Config{Opener: pdftext.NewOpener()})
//	res, err := p.Process(ctx, "/path/to/paper.pdf")
package extract

import (
	"context"
	"log/slog"

	"examparse/internal/domain"
	"examparse/internal/port"
)

// Config holds the collaborators of a Pipeline.
type Config struct {
	Opener     port.DocumentOpener
	Filter     *FooterFilter
	AnchorMode AnchorMode
	Logger     *slog.Logger
}

func (c *Config) defaults() {
	if c.Filter == nil {
		c.Filter = DefaultFooterFilter()
	}
	if c.AnchorMode == "" {
		c.AnchorMode = AnchorSearch
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Pipeline runs column extraction, footer removal and segmentation over a document.
type Pipeline struct {
	opener    port.DocumentOpener
	filter    *FooterFilter
	segmenter *Segmenter
	logger    *slog.Logger
}

// New creates a Pipeline with the given configuration.
func New(cfg Config) *Pipeline {
	cfg.defaults()
	return &Pipeline{
		opener:    cfg.Opener,
		filter:    cfg.Filter,
		segmenter: NewSegmenter(cfg.AnchorMode),
		logger:    cfg.Logger,
	}
}

// Process extracts the questions of the document at path. It fails only when
// the document cannot be opened or read; a document without questions or
// options yields warnings instead.
func (p *Pipeline) Process(ctx context.Context, path string) (*domain.ExtractionResult, error) {
	doc, err := p.opener.Open(path)
	if err != nil {
		return nil, domain.NewDocumentOpenError(path, err)
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil {
			p.logger.Warn("closing document failed", "path", path, "error", cerr)
		}
	}()

	text, err := ExtractColumns(ctx, doc, p.filter)
	if err != nil {
		return nil, err
	}

	res := p.ProcessText(text)
	res.PageCount = doc.PageCount()
	return res, nil
}

// ProcessText segments already extracted document text.
func (p *Pipeline) ProcessText(text string) *domain.ExtractionResult {
	seg := p.segmenter.Segment(text)
	for _, w := range seg.Warnings {
		p.logger.Warn(w.Message, "code", w.Code)
	}
	p.logger.Info("questions extracted", "count", len(seg.Questions))

	warnings := seg.Warnings
	if warnings == nil {
		warnings = []domain.Warning{}
	}
	return &domain.ExtractionResult{
		Questions: seg.Questions,
		Warnings:  warnings,
	}
}
