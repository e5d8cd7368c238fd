package screening

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReportFileName is the download name for the annotated workbook.
const ReportFileName = "checked_list.xlsx"

// reportSheet is the sheet the annotated rows are written to.
const reportSheet = "Sheet1"

// resultHeader is the column appended after the uploaded columns.
const resultHeader = "Check Result"

// WriteReport renders a screening result as an XLSX workbook.
//
// The workbook mirrors the uploaded table: the original header row plus a
// trailing "Check Result" column, then one row per screened row with its
// status appended. Rows that matched a reference group are filled red or
// yellow across every cell, the header row stays unstyled.
func WriteReport(res *Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	width := len(res.Table.Headers) + 1

	header := make([]interface{}, 0, width)
	for _, h := range res.Table.Headers {
		header = append(header, h)
	}
	header = append(header, resultHeader)
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	// Style IDs are cached per color so two styles cover the whole file.
	styles := make(map[string]int)

	for i := range res.Table.Rows {
		rowNum := i + 2

		row := make([]interface{}, 0, width)
		for c := 0; c < len(res.Table.Headers); c++ {
			row = append(row, res.Table.Cell(i, c))
		}
		row = append(row, res.Outcomes[i].Status)

		start, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		if err := f.SetSheetRow(reportSheet, start, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", rowNum, err)
		}

		color := res.Outcomes[i].Color
		if color == ColorWhite {
			continue
		}

		styleID, ok := styles[color]
		if !ok {
			styleID, err = f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			})
			if err != nil {
				return nil, fmt.Errorf("create fill style: %w", err)
			}
			styles[color] = styleID
		}

		end, err := excelize.CoordinatesToCellName(width, rowNum)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		if err := f.SetCellStyle(reportSheet, start, end, styleID); err != nil {
			return nil, fmt.Errorf("style row %d: %w", rowNum, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
