package importer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	sheet := f.GetSheetName(0)
	for r, values := range rows {
		for c, v := range values {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	// A second sheet must be ignored.
	_, err := f.NewSheet("Ignorada")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Ignorada", "A1", "DOCENTE"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestReadWorkbookTypesCells(t *testing.T) {
	defense := time.Date(2020, 3, 10, 0, 0, 0, 0, time.UTC)
	r := buildWorkbook(t, [][]interface{}{
		{"NOME DO ALUNO", "ANO DE INGRESSO", "ANO DE DEFESA", "CURSO"},
		{"Ana", 2018, defense, "Mestrado"},
		{nil, nil, nil, nil},
		{"Bruno", "2019", nil, "Doutorado"},
	})

	sheet, err := ReadWorkbook(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"NOME DO ALUNO", "ANO DE INGRESSO", "ANO DE DEFESA", "CURSO"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)

	first := sheet.Rows[0]
	assert.Equal(t, KindString, first.Get("NOME DO ALUNO").Kind())
	assert.Equal(t, KindNumber, first.Get("ANO DE INGRESSO").Kind())
	assert.Equal(t, KindDate, first.Get("ANO DE DEFESA").Kind())
	year, ok := ParseYear(first.Get("ANO DE DEFESA"))
	assert.True(t, ok)
	assert.Equal(t, 2020, year)

	second := sheet.Rows[1]
	assert.Equal(t, KindString, second.Get("ANO DE INGRESSO").Kind())
	assert.Equal(t, KindAbsent, second.Get("ANO DE DEFESA").Kind())
}

func TestReadWorkbookFacultySheet(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"DOCENTE", "CATEGORIA", "ANO"},
		{"Dr. Silva", "Permanente", "2021"},
		{"Dr. Souza", "Colaborador", nil},
	})

	sheet, err := ReadWorkbook(r)
	require.NoError(t, err)

	res := New().Faculty(sheet.Rows)
	require.Len(t, res.Records, 1)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, "Dr. Silva", res.Records[0].Name)
	assert.Equal(t, "Permanente", res.Records[0].Category)
	assert.Equal(t, 2021, res.Records[0].Year)
	assert.True(t, strings.HasPrefix(res.Records[0].ID, "imported-"))
}

func TestReadWorkbookMissingColumnsYieldsNoRecords(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Nome", "Ano"},
		{"Dr. Silva", 2021},
	})

	sheet, err := ReadWorkbook(r)
	require.NoError(t, err)
	assert.NotEmpty(t, MissingHeaders(KindFaculty, sheet.Headers))
	assert.Empty(t, New().Faculty(sheet.Rows).Records)
}

func TestReadWorkbookRejectsGarbage(t *testing.T) {
	_, err := ReadWorkbook(strings.NewReader("NOME;ANO\nAna;2020\n"))
	assert.ErrorIs(t, err, ErrWorkbookUnreadable)
}

func TestIsDateFormatCode(t *testing.T) {
	assert.True(t, isDateFormatCode("dd/mm/yyyy"))
	assert.True(t, isDateFormatCode(`[$-416]d" de "mmmm" de "yyyy`))
	assert.False(t, isDateFormatCode(`#,##0.00 "dias"`))
	assert.False(t, isDateFormatCode("[Red]0.00"))
	assert.False(t, isDateFormatCode("0"))
}
