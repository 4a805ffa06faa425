package pdftext

import (
	"fmt"

	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/text"

	"examparse/internal/port"
)

// Opener opens PDF files with tabula.
type Opener struct{}

// NewOpener creates an Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open parses the file at path and loads its page tree.
func (o *Opener) Open(path string) (port.Document, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, err
	}
	count, err := r.PageCount()
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("reading page tree: %w", err)
	}
	return &document{r: r, pageCount: count}, nil
}

type document struct {
	r         *reader.Reader
	pageCount int
}

func (d *document) PageCount() int { return d.pageCount }

func (d *document) Page(index int) (port.Page, error) {
	if index < 0 || index >= d.pageCount {
		return nil, fmt.Errorf("page index %d out of range [0,%d)", index, d.pageCount)
	}
	p, err := d.r.GetPage(index)
	if err != nil {
		return nil, err
	}
	mb, err := p.MediaBox()
	if err != nil {
		return nil, fmt.Errorf("media box: %w", err)
	}
	box, err := newPageBox(mb)
	if err != nil {
		return nil, err
	}
	frags, err := d.r.ExtractTextFragments(p)
	if err != nil {
		return nil, err
	}
	return &page{box: box, fragments: frags}, nil
}

func (d *document) Close() error {
	return d.r.Close()
}

type page struct {
	box       pageBox
	fragments []text.TextFragment
}

func (p *page) Width() float64  { return p.box.width() }
func (p *page) Height() float64 { return p.box.height() }

func (p *page) TextInRect(r port.Rect) (string, error) {
	return layoutText(p.fragments, p.box, r), nil
}
