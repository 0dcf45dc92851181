package db

import (
	"database/sql"
	"fmt"
	"time"
)

// InsertRender inserts a pending render row and returns its ID.
func InsertRender(db *sql.DB, r *Render) (int64, error) {
	result, err := db.Exec(InsertRenderSQL,
		r.RunID, r.VideoPath, r.SaveFilePath, r.OutputPath,
		r.ClipCount, r.Duration, r.StartedAt)
	if err != nil {
		return 0, fmt.Errorf("insert render: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get render id: %w", err)
	}
	return id, nil
}

// MarkRenderComplete updates a renders row with the finish time and the
// size of the produced output file.
func MarkRenderComplete(db *sql.DB, id int64, finishedAt time.Time, outputBytes int64) error {
	_, err := db.Exec(MarkRenderCompleteSQL, finishedAt, outputBytes, id)
	if err != nil {
		return fmt.Errorf("mark render complete: %w", err)
	}
	return nil
}

// MarkRenderError updates a renders row with the error time and message.
func MarkRenderError(db *sql.DB, id int64, errorAt time.Time, message string) error {
	_, err := db.Exec(MarkRenderErrorSQL, errorAt, message, id)
	if err != nil {
		return fmt.Errorf("mark render error: %w", err)
	}
	return nil
}

// ListRenders returns the most recent render runs, newest first.
func ListRenders(db *sql.DB, limit int) ([]Render, error) {
	rows, err := db.Query(SelectRendersSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select renders: %w", err)
	}
	defer rows.Close()

	var renders []Render
	for rows.Next() {
		var r Render
		if err := rows.Scan(
			&r.ID, &r.RunID, &r.VideoPath, &r.SaveFilePath, &r.OutputPath,
			&r.ClipCount, &r.Duration, &r.OutputBytes,
			&r.StartedAt, &r.FinishedAt, &r.ErrorAt, &r.Error,
		); err != nil {
			return nil, fmt.Errorf("scan render: %w", err)
		}
		renders = append(renders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating renders: %w", err)
	}
	return renders, nil
}
