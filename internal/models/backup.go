package models

import "time"

// Backup is the portable document holding every collection verbatim.
type Backup struct {
	Graduates []Graduate `json:"graduates"`
	Faculty   []Faculty  `json:"docentes"`
	Projects  []Project  `json:"projetos"`
}

// BackupArchive describes a backup stored on disk and its signed download link.
type BackupArchive struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
	Graduates   int       `json:"graduates"`
	Faculty     int       `json:"faculty"`
	Projects    int       `json:"projects"`
}

// ClearRequest must carry an explicit confirmation for the wipe to proceed.
type ClearRequest struct {
	Confirm bool `json:"confirm"`
}

// ImportResult reports how many rows an import appended.
type ImportResult struct {
	Kind     string `json:"kind"`
	Imported int    `json:"imported"`
}
