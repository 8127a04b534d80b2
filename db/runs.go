package db

import (
	"database/sql"
	"fmt"
	"time"
)

// InsertRun records a run in processing status and returns its ID.
func InsertRun(db *sql.DB, r NewRun) (int64, error) {
	result, err := db.Exec(InsertRunSQL,
		r.VideoPath, r.OutputDir, r.IntervalSeconds, r.TargetWidth, r.SplitRatio,
		r.FontSize, r.AddBorder, r.Decoder, r.StartedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return result.LastInsertId()
}

// MarkRunComplete updates a runs row to complete status with its final counters.
func MarkRunComplete(db *sql.DB, runID int64, res RunResult) error {
	_, err := db.Exec(MarkRunCompleteSQL,
		res.FinishedAt.UTC(), res.FrameStep, res.FrameCount, res.PageCount, res.Font, runID,
	)
	if err != nil {
		return fmt.Errorf("mark run complete: %w", err)
	}
	return nil
}

// MarkRunError updates a runs row to error status, keeping whatever counters
// the run reached and the error message.
func MarkRunError(db *sql.DB, runID int64, res RunResult) error {
	_, err := db.Exec(MarkRunErrorSQL,
		res.FinishedAt.UTC(), res.FrameStep, res.FrameCount, res.PageCount, res.Error, runID,
	)
	if err != nil {
		return fmt.Errorf("mark run error: %w", err)
	}
	return nil
}

// SelectRuns returns up to limit runs, newest first.
func SelectRuns(db *sql.DB, limit int) ([]Run, error) {
	rows, err := db.Query(SelectRunsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// SelectRunByID returns a single runs row by ID.
func SelectRunByID(db *sql.DB, id int64) (*Run, error) {
	return scanRun(db.QueryRow(SelectRunByIDSQL, id))
}

// DeleteRunsBefore removes runs started before cutoff and reports how many
// were deleted. Output files on disk are not touched.
func DeleteRunsBefore(db *sql.DB, cutoff time.Time) (int64, error) {
	result, err := db.Exec(DeleteRunsBeforeSQL, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete runs: %w", err)
	}
	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var r Run
	err := s.Scan(&r.ID, &r.VideoPath, &r.OutputDir, &r.IntervalSeconds, &r.TargetWidth,
		&r.SplitRatio, &r.FontSize, &r.AddBorder, &r.Decoder, &r.Status, &r.FrameStep,
		&r.FrameCount, &r.PageCount, &r.Font, &r.Error, &r.StartedAt, &r.FinishedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
