package db

import "time"

// Render represents a row in the renders table: one render run, pending
// until either FinishedAt or ErrorAt is set.
type Render struct {
	ID           int64
	RunID        string
	VideoPath    string
	SaveFilePath string
	OutputPath   string
	ClipCount    int
	Duration     float64
	OutputBytes  int64
	StartedAt    time.Time
	FinishedAt   *time.Time
	ErrorAt      *time.Time
	Error        string
}
