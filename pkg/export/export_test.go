package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterDataset() Dataset {
	return Dataset{
		Headers: []string{"Nome", "Curso", "Ano de Defesa"},
		Rows: []map[string]string{
			{"Nome": "Ana Souza", "Curso": "Mestrado", "Ano de Defesa": "2020"},
			{"Nome": "João; Lima", "Curso": "Doutorado"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(rosterDataset())
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(out, utf8BOM))
	lines := strings.Split(strings.TrimSpace(string(out[len(utf8BOM):])), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Nome;Curso;Ano de Defesa", lines[0])
	assert.Equal(t, "Ana Souza;Mestrado;2020", lines[1])
	assert.Equal(t, `"João; Lima";Doutorado;`, lines[2])
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()
	exporter.Widths = map[string]float64{"Nome": 3}

	out, err := exporter.Render(rosterDataset(), "Egressos PPGEE", "Curso: todos")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFExporterColumnWidths(t *testing.T) {
	exporter := &PDFExporter{Widths: map[string]float64{"a": 2}}
	widths := exporter.columnWidths([]string{"a", "b"})
	assert.InDelta(t, landscapeWidth*2/3, widths[0], 0.001)
	assert.InDelta(t, landscapeWidth/3, widths[1], 0.001)
}
