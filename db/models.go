package db

import (
	"database/sql"
	"time"
)

// Run status values stored in runs.status.
const (
	StatusProcessing = "processing"
	StatusComplete   = "complete"
	StatusError      = "error"
)

// Run represents a row in the runs table.
type Run struct {
	ID              int64
	VideoPath       string
	OutputDir       string
	IntervalSeconds float64
	TargetWidth     int
	SplitRatio      float64
	FontSize        int
	AddBorder       bool
	Decoder         string
	Status          string
	FrameStep       int
	FrameCount      int
	PageCount       int
	Font            string
	Error           string
	StartedAt       time.Time
	FinishedAt      sql.NullTime
}

// Elapsed returns how long the run took, or zero while it is unfinished.
func (r *Run) Elapsed() time.Duration {
	if !r.FinishedAt.Valid {
		return 0
	}
	return r.FinishedAt.Time.Sub(r.StartedAt)
}

// NewRun holds the parameters recorded when a run starts.
type NewRun struct {
	VideoPath       string
	OutputDir       string
	IntervalSeconds float64
	TargetWidth     int
	SplitRatio      float64
	FontSize        int
	AddBorder       bool
	Decoder         string
	StartedAt       time.Time
}

// RunResult holds the counters recorded when a run ends.
type RunResult struct {
	FinishedAt time.Time
	FrameStep  int
	FrameCount int
	PageCount  int
	Font       string
	Error      string
}
