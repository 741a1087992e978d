package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrWorkbookUnreadable is returned for anything that is not a readable spreadsheet.
var ErrWorkbookUnreadable = errors.New("workbook unreadable")

// Sheet is the first worksheet of a workbook: its header row and the data rows under it.
type Sheet struct {
	Name    string
	Headers []string
	Rows    []Row
}

// ReadWorkbook parses the first worksheet. The first row supplies the headers;
// columns with an empty header and rows without any value are ignored.
func ReadWorkbook(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookUnreadable, err)
	}
	defer f.Close() //nolint:errcheck

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no worksheets", ErrWorkbookUnreadable)
	}
	name := sheets[0]

	grid, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookUnreadable, err)
	}
	sheet := &Sheet{Name: name}
	if len(grid) == 0 {
		return sheet, nil
	}

	reader := cellReader{file: f, sheet: name, date1904: uses1904(f)}
	sheet.Headers = make([]string, len(grid[0]))
	for i, h := range grid[0] {
		sheet.Headers[i] = strings.TrimSpace(h)
	}

	for rowIdx := 1; rowIdx < len(grid); rowIdx++ {
		row := Row{}
		for colIdx, formatted := range grid[rowIdx] {
			if colIdx >= len(sheet.Headers) || sheet.Headers[colIdx] == "" || formatted == "" {
				continue
			}
			cell, err := reader.read(colIdx+1, rowIdx+1, formatted)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrWorkbookUnreadable, err)
			}
			row[sheet.Headers[colIdx]] = cell
		}
		if len(row) > 0 {
			sheet.Rows = append(sheet.Rows, row)
		}
	}
	return sheet, nil
}

type cellReader struct {
	file     *excelize.File
	sheet    string
	date1904 bool
}

// read types one cell. Numeric cells styled with a date format become dates.
func (cr cellReader) read(col, row int, formatted string) (Cell, error) {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return Absent(), err
	}
	typ, err := cr.file.GetCellType(cr.sheet, ref)
	if err != nil {
		return Absent(), err
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return String(formatted), nil
	case excelize.CellTypeBool:
		return String(strings.ToUpper(formatted)), nil
	}

	raw, err := cr.file.GetCellValue(cr.sheet, ref, excelize.Options{RawCellValue: true})
	if err != nil {
		return Absent(), err
	}
	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return String(formatted), nil
	}
	if typ == excelize.CellTypeDate || cr.isDateStyled(ref) {
		if t, err := excelize.ExcelDateToTime(num, cr.date1904); err == nil {
			return Date(t), nil
		}
	}
	return Number(num), nil
}

func (cr cellReader) isDateStyled(ref string) bool {
	styleID, err := cr.file.GetCellStyle(cr.sheet, ref)
	if err != nil || styleID == 0 {
		return false
	}
	style, err := cr.file.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	return isBuiltInDateFormat(style.NumFmt)
}

func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22, id >= 27 && id <= 36, id >= 45 && id <= 47, id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode looks for day or year tokens outside quoted literals and bracketed sections.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	return strings.ContainsAny(b.String(), "dy")
}

func uses1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}
