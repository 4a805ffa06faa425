package extract

import (
	"context"
	"fmt"
	"strings"

	"examparse/internal/port"
)

// coverPages is the number of leading pages never scanned for questions.
const coverPages = 1

// ExtractColumns returns the text of every page after the cover page, left
// column first, footer noise removed. Each page contributes
// left + "\n" + right + "\n\n".
func ExtractColumns(ctx context.Context, doc port.Document, filter *FooterFilter) (string, error) {
	var combined strings.Builder
	for i := coverPages; i < doc.PageCount(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page, err := doc.Page(i)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i+1, err)
		}
		left, right, err := pageColumns(page, filter)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i+1, err)
		}
		combined.WriteString(left)
		combined.WriteString("\n")
		combined.WriteString(right)
		combined.WriteString("\n\n")
	}
	return combined.String(), nil
}

// pageColumns splits page at its vertical midline and cleans both halves.
func pageColumns(page port.Page, filter *FooterFilter) (string, string, error) {
	width, height := page.Width(), page.Height()
	mid := width / 2

	left, err := page.TextInRect(port.Rect{X0: 0, Y0: 0, X1: mid, Y1: height})
	if err != nil {
		return "", "", fmt.Errorf("left column: %w", err)
	}
	right, err := page.TextInRect(port.Rect{X0: mid, Y0: 0, X1: width, Y1: height})
	if err != nil {
		return "", "", fmt.Errorf("right column: %w", err)
	}
	return cleanColumn(left, filter), cleanColumn(right, filter), nil
}

func cleanColumn(text string, filter *FooterFilter) string {
	return strings.TrimSpace(filter.RemoveFooter(strings.TrimSpace(text)))
}
