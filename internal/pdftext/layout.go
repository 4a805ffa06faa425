package pdftext

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/tabula/layout"
	"github.com/tsawler/tabula/text"

	"examparse/internal/port"
)

// pageBox is a PDF media box in bottom-left user space.
type pageBox struct {
	llx, lly, urx, ury float64
}

func newPageBox(mb []float64) (pageBox, error) {
	if len(mb) != 4 {
		return pageBox{}, fmt.Errorf("media box has %d values, want 4", len(mb))
	}
	b := pageBox{llx: mb[0], lly: mb[1], urx: mb[2], ury: mb[3]}
	if b.llx > b.urx {
		b.llx, b.urx = b.urx, b.llx
	}
	if b.lly > b.ury {
		b.lly, b.ury = b.ury, b.lly
	}
	if b.width() <= 0 || b.height() <= 0 {
		return pageBox{}, fmt.Errorf("empty media box %v", mb)
	}
	return b, nil
}

func (b pageBox) width() float64  { return b.urx - b.llx }
func (b pageBox) height() float64 { return b.ury - b.lly }

// placed is a fragment's horizontal extent and vertical center in top-left
// page coordinates.
type placed struct {
	x0, x1 float64
	cy     float64
}

func place(f text.TextFragment, b pageBox) placed {
	x0 := f.X - b.llx
	top := b.ury - f.Y - f.Height
	return placed{x0: x0, x1: x0 + f.Width, cy: top + f.Height/2}
}

// inside reports whether the fragment's center lies in r. A fragment on the
// shared edge of two adjacent rectangles belongs to the right or lower one.
func (p placed) inside(r port.Rect) bool {
	cx := (p.x0 + p.x1) / 2
	return cx >= r.X0 && cx < r.X1 && p.cy >= r.Y0 && p.cy < r.Y1
}

// lineDetector groups clipped fragments into lines. Lines of any width are
// kept so a one-character option or answer line survives.
func lineDetector() *layout.LineDetector {
	cfg := layout.DefaultLineConfig()
	cfg.MinLineWidth = 0
	return layout.NewLineDetectorWithConfig(cfg)
}

// layoutText returns the text of the fragments centered in r, one output line
// per visual line, top to bottom.
func layoutText(frags []text.TextFragment, b pageBox, r port.Rect) string {
	var in []text.TextFragment
	for _, f := range frags {
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		if place(f, b).inside(r) {
			in = append(in, f)
		}
	}
	if len(in) == 0 {
		return ""
	}

	// same-line fragments keep this order when the detector preserves stream order
	sort.SliceStable(in, func(i, j int) bool { return in[i].X < in[j].X })

	return lineDetector().Detect(in, b.width(), b.height()).GetText()
}
