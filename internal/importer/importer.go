// Package importer turns spreadsheet rows into validated records.
package importer

import (
	"time"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
)

// Result holds the accepted records of one sheet and how many rows were dropped.
type Result[T any] struct {
	Records []T
	Skipped int
}

// Importer maps rows to records and stamps each accepted one with a fresh id.
type Importer struct {
	now   func() time.Time
	newID func(time.Time) string
}

// New returns an Importer using the wall clock and NewImportedID.
func New() *Importer {
	return &Importer{now: time.Now, newID: NewImportedID}
}

func (im *Importer) Graduates(rows []Row) Result[models.Graduate] {
	return mapRows(rows, im.id, GraduateFromRow)
}

func (im *Importer) Faculty(rows []Row) Result[models.Faculty] {
	return mapRows(rows, im.id, FacultyFromRow)
}

func (im *Importer) Projects(rows []Row) Result[models.Project] {
	return mapRows(rows, im.id, ProjectFromRow)
}

func (im *Importer) id() string {
	return im.newID(im.now())
}

func mapRows[T any](rows []Row, id func() string, mapRow func(Row, string) (T, bool)) Result[T] {
	res := Result[T]{Records: make([]T, 0, len(rows))}
	for _, row := range rows {
		rec, ok := mapRow(row, id())
		if !ok {
			res.Skipped++
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res
}
