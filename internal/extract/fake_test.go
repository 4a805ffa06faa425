package extract_test

import (
	"errors"
	"fmt"

	"examparse/internal/port"
)

// fakePage serves fixed text for its left and right halves.
type fakePage struct {
	width, height float64
	left, right   string
	rects         []port.Rect
	err           error
}

func (p *fakePage) Width() float64  { return p.width }
func (p *fakePage) Height() float64 { return p.height }

func (p *fakePage) TextInRect(r port.Rect) (string, error) {
	p.rects = append(p.rects, r)
	if p.err != nil {
		return "", p.err
	}
	if r.X0 < p.width/2 {
		return p.left, nil
	}
	return p.right, nil
}

type fakeDocument struct {
	pages  []*fakePage
	closed bool
}

func newFakeDocument(columns ...[2]string) *fakeDocument {
	doc := &fakeDocument{}
	for _, c := range columns {
		doc.pages = append(doc.pages, &fakePage{width: 600, height: 800, left: c[0], right: c[1]})
	}
	return doc
}

func (d *fakeDocument) PageCount() int { return len(d.pages) }

func (d *fakeDocument) Page(i int) (port.Page, error) {
	if i < 0 || i >= len(d.pages) {
		return nil, fmt.Errorf("page %d out of range", i)
	}
	return d.pages[i], nil
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

type fakeOpener struct {
	doc *fakeDocument
	err error
}

func (o *fakeOpener) Open(string) (port.Document, error) {
	if o.err != nil {
		return nil, o.err
	}
	return o.doc, nil
}

var errBrokenPage = errors.New("broken content stream")
