package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/ppgee-dashboard-api/internal/importer"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
)

func workbookBytes(t *testing.T, rows [][]interface{}) []byte {
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
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestImportServiceAppendsAcceptedRows(t *testing.T) {
	store, _ := newMemoryRecordStore(t)
	metrics := NewMetricsService()
	svc := NewImportService(store, nil, metrics, nil, 0)

	raw := workbookBytes(t, [][]interface{}{
		{"DOCENTE", "CATEGORIA", "ANO"},
		{"Dr. Silva", "Permanente", "2021"},
		{"Dr. Souza", "Colaborador", nil},
		{"Dra. Lima", nil, 2022},
	})

	res, err := svc.Import(context.Background(), importer.KindFaculty, bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "faculty", res.Kind)
	assert.Equal(t, 2, res.Imported)

	current, version := store.Snapshot()
	require.Len(t, current.Faculty, 2)
	assert.Equal(t, "Dr. Silva", current.Faculty[0].Name)
	assert.Equal(t, "N/A", current.Faculty[1].Category)
	assert.True(t, strings.HasPrefix(current.Faculty[0].ID, "imported-"))
	assert.NotEqual(t, current.Faculty[0].ID, current.Faculty[1].ID)
	assert.Equal(t, uint64(2), version, "one batch is one action")

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.importRows.WithLabelValues("faculty", OutcomeAccepted)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.importRows.WithLabelValues("faculty", OutcomeSkipped)))
}

func TestImportServiceMissingColumnsImportsNothing(t *testing.T) {
	store, _ := newMemoryRecordStore(t)
	svc := NewImportService(store, nil, nil, nil, 0)

	raw := workbookBytes(t, [][]interface{}{
		{"Titulo", "Ano"},
		{"Projeto sem cabeçalho exato", 2021},
	})

	res, err := svc.Import(context.Background(), importer.KindProjects, bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Imported)

	current, version := store.Snapshot()
	assert.Empty(t, current.Projects)
	assert.Equal(t, uint64(1), version)
}

func TestImportServiceRejectsUnreadableFile(t *testing.T) {
	store, _ := newMemoryRecordStore(t)
	metrics := NewMetricsService()
	svc := NewImportService(store, nil, metrics, nil, 0)

	_, err := svc.Import(context.Background(), importer.KindGraduates, strings.NewReader("not a workbook"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrImportFileInvalid))
	assert.True(t, errors.Is(err, importer.ErrWorkbookUnreadable))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.importFailures.WithLabelValues("graduates")))

	current, _ := store.Snapshot()
	assert.Len(t, current.Graduates, 2)
}

func TestImportServiceEnforcesSizeLimit(t *testing.T) {
	store, _ := newMemoryRecordStore(t)
	svc := NewImportService(store, nil, nil, nil, 16)

	_, err := svc.Import(context.Background(), importer.KindGraduates, bytes.NewReader(make([]byte, 17)))
	assert.True(t, errors.Is(err, appErrors.ErrPayloadTooLarge))
}
