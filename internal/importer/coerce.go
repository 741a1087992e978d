package importer

import (
	"math"
	"strconv"
	"strings"
)

const (
	minYear = 1900
	maxYear = 2100

	defaultName = "N/A"
)

// ParseYear extracts a year from a date, a dd/mm/yyyy string, a bare
// four-digit string or a whole number. Text and numbers must fall within [1900, 2100].
func ParseYear(c Cell) (int, bool) {
	switch c.Kind() {
	case KindDate:
		t, _ := c.DateValue()
		return t.Year(), true
	case KindNumber:
		n, _ := c.NumberValue()
		if n == math.Trunc(n) && n >= minYear && n <= maxYear {
			return int(n), true
		}
		return 0, false
	case KindString:
		return parseYearText(strings.TrimSpace(c.Text()))
	default:
		return 0, false
	}
}

func parseYearText(s string) (int, bool) {
	if parts := strings.Split(s, "/"); len(parts) == 3 {
		s = strings.TrimSpace(parts[2])
	}
	y, ok := fourDigits(s)
	if !ok || y < minYear || y > maxYear {
		return 0, false
	}
	return y, true
}

func fourDigits(s string) (int, bool) {
	if len(s) != 4 {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	y, err := strconv.Atoi(s)
	return y, err == nil
}

// Text returns the cell text, or fallback when the cell is blank.
func Text(c Cell, fallback string) string {
	if c.Blank() {
		return fallback
	}
	return c.Text()
}

// OptionalText returns nil for blank cells.
func OptionalText(c Cell) *string {
	if c.Blank() {
		return nil
	}
	s := c.Text()
	return &s
}

// Yes is true only for a case-insensitive "sim".
func Yes(c Cell) bool {
	return strings.EqualFold(c.Text(), "sim")
}

// Count parses a non-negative whole number, truncating fractions. Anything else is 0.
func Count(c Cell) int {
	f, ok := numeric(c)
	if !ok || f < 0 || f > math.MaxInt32 {
		return 0
	}
	return int(math.Trunc(f))
}

// Amount parses a non-negative monetary value. Text may use the pt-BR
// form "R$ 1.234,56". Anything unparseable is 0.
func Amount(c Cell) float64 {
	f, ok := numeric(c)
	if !ok || f < 0 {
		return 0
	}
	return f
}

func numeric(c Cell) (float64, bool) {
	switch c.Kind() {
	case KindNumber:
		n, _ := c.NumberValue()
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case KindString:
		return parseDecimal(c.Text())
	default:
		return 0, false
	}
}

func parseDecimal(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
