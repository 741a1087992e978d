package importer

import (
	"time"

	"github.com/google/uuid"
)

const importedPrefix = "imported-"

// NewImportedID returns "imported-<RFC3339Nano>-<uuid>". The random suffix keeps
// ids unique even for rows stamped with the same instant.
func NewImportedID(now time.Time) string {
	return importedPrefix + now.UTC().Format(time.RFC3339Nano) + "-" + uuid.NewString()
}
