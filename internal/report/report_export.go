package report

import (
	"bytes"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var csvQuote = strings.NewReplacer(`"`, `""`)

// writeCSV quotes every cell, header included, and doubles embedded quotes.
// Spreadsheet imports then keep leading zeros and commas intact.
func writeCSV(w io.Writer, t table) error {
	var b strings.Builder
	writeLine := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			csvQuote.WriteString(&b, c)
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}

	writeLine(t.headers)
	for _, row := range t.rows {
		writeLine(row)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeXLSX(w io.Writer, t table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", t.sheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(t.sheet, "A1", &t.headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(t.headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(t.sheet, "A1", last, bold); err != nil {
		return err
	}

	for i := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.sheet, cell, &t.rows[i]); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func render(format string, t table) ([]byte, string, error) {
	var buf bytes.Buffer
	switch format {
	case FormatXLSX:
		if err := writeXLSX(&buf, t); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), contentTypeXLSX, nil
	default:
		if err := writeCSV(&buf, t); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), contentTypeCSV, nil
	}
}
