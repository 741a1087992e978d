package importer

import (
	"strconv"
	"time"
)

// CellKind tags the value held by a Cell.
type CellKind int

const (
	KindAbsent CellKind = iota
	KindString
	KindNumber
	KindDate
)

func (k CellKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "absent"
	}
}

// Cell is one spreadsheet value. The zero value is an absent cell.
type Cell struct {
	kind CellKind
	str  string
	num  float64
	date time.Time
}

// Row maps a header to the cell found under it.
type Row map[string]Cell

// Get returns the cell under header, absent when the column is missing.
func (r Row) Get(header string) Cell {
	return r[header]
}

func Absent() Cell { return Cell{} }

// String builds a text cell. The empty string is kept as text; callers treat it as blank.
func String(s string) Cell { return Cell{kind: KindString, str: s} }

func Number(f float64) Cell { return Cell{kind: KindNumber, num: f} }

func Date(t time.Time) Cell { return Cell{kind: KindDate, date: t} }

func (c Cell) Kind() CellKind { return c.kind }

// Blank reports whether the cell carries no usable text.
func (c Cell) Blank() bool {
	return c.kind == KindAbsent || (c.kind == KindString && c.str == "")
}

// Text renders the cell the way a user would read it in the sheet.
func (c Cell) Text() string {
	switch c.kind {
	case KindString:
		return c.str
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case KindDate:
		return c.date.Format("02/01/2006")
	default:
		return ""
	}
}

func (c Cell) NumberValue() (float64, bool) {
	return c.num, c.kind == KindNumber
}

func (c Cell) DateValue() (time.Time, bool) {
	return c.date, c.kind == KindDate
}
