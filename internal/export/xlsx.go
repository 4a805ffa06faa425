package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"examparse/internal/domain"
)

// SheetName is the worksheet holding exported questions.
const SheetName = "Questions"

var columnWidths = map[string]float64{
	"A": 6,
	"B": 70,
	"C": 30, "D": 30, "E": 30, "F": 30,
	"G": 14,
}

// WriteXLSX writes questions as a single-sheet workbook to w.
func WriteXLSX(w io.Writer, questions []domain.QuestionRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range questions {
		cells := questionToRow(i+1, &questions[i])
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		// numeric columns stay numeric in the sheet
		row[0] = i + 1
		row[6] = len(questions[i].Options)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := styleSheet(f, len(questions)); err != nil {
		return err
	}
	return f.Write(w)
}

func styleSheet(f *excelize.File, rows int) error {
	for col, width := range columnWidths {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("setting width of %s: %w", col, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "G1", headerStyle); err != nil {
		return err
	}
	if rows == 0 {
		return nil
	}

	bodyStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("creating body style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(columns), rows+1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, "A2", last, bodyStyle)
}
