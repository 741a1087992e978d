package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Content types of the rendered reports.
const (
	CSVContentType = "text/csv; charset=utf-8"
	PDFContentType = "application/pdf"
)

// Dataset is one report table. Rows are keyed by header; a missing key renders as an empty cell.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// utf8BOM lets spreadsheet tools detect the encoding of accented Portuguese headers.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVExporter writes datasets the way pt-BR spreadsheet tools open them:
// ';' as separator and a UTF-8 byte order mark.
type CSVExporter struct {
	comma rune
}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{comma: ';'}
}

// Render writes the header row followed by one line per row, in header order.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv report has no columns")
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	w.Comma = e.comma

	if err := w.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	line := make([]string, len(data.Headers))
	for i, row := range data.Rows {
		for j, header := range data.Headers {
			line[j] = row[header]
		}
		if err := w.Write(line); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
