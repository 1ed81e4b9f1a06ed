package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"

	"minuteflow/internal/models"
	"minuteflow/internal/util"
)

// JobRepo is the keyed store for summary jobs: one row per meeting in
// summary_processes.
type JobRepo struct {
	db *DB
}

func NewJobRepo(db *DB) *JobRepo {
	return &JobRepo{db: db}
}

// UpsertPending creates the job row for a meeting or resets an existing one
// back to PENDING with a fresh start time, clearing any previous result and
// error. Calling it repeatedly for the same meeting is safe; there is never
// more than one row per meeting.
func (r *JobRepo) UpsertPending(ctx context.Context, meetingID string) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO summary_processes (meeting_id, status, created_at, updated_at, start_time)
VALUES ($1, $2, NOW(), NOW(), NOW())
ON CONFLICT (meeting_id)
DO UPDATE SET
  status = EXCLUDED.status,
  updated_at = NOW(),
  start_time = NOW(),
  error = NULL,
  result = NULL`,
		meetingID, models.StatusPending,
	)
	if err != nil {
		return fmt.Errorf("upsert pending job: %w", err)
	}
	return nil
}

// JobUpdate carries the fields to write on a status transition. Nil fields
// are left untouched.
type JobUpdate struct {
	Status         string
	Result         *string
	Error          *string
	ChunkCount     *int
	ProcessingTime *float64
	Metadata       *string
}

// Update writes a job transition. Error strings are sanitized before
// persistence, and end_time is stamped when the new status is terminal.
func (r *JobRepo) Update(ctx context.Context, meetingID string, upd JobUpdate) error {
	status := strings.ToUpper(strings.TrimSpace(upd.Status))
	sets := []string{"status = $2", "updated_at = NOW()"}
	args := []any{meetingID, status}

	add := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Result != nil {
		add("result", *upd.Result)
	}
	if upd.Error != nil {
		add("error", util.SanitizeErrorMessage(*upd.Error))
	}
	if upd.ChunkCount != nil {
		add("chunk_count", *upd.ChunkCount)
	}
	if upd.ProcessingTime != nil {
		add("processing_time", *upd.ProcessingTime)
	}
	if upd.Metadata != nil {
		add("metadata", *upd.Metadata)
	}
	if models.IsTerminal(status) {
		sets = append(sets, "end_time = NOW()")
	}

	query := fmt.Sprintf("UPDATE summary_processes SET %s WHERE meeting_id = $1", strings.Join(sets, ", "))
	tag, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Printf("no job found to update for meeting_id=%s", meetingID)
	}
	return nil
}

// ReplaceResult is the administrative wholesale overwrite of a stored summary.
// It does not touch status or timestamps other than updated_at.
func (r *JobRepo) ReplaceResult(ctx context.Context, meetingID, result string) error {
	_, err := r.db.Pool.Exec(ctx, `
UPDATE summary_processes SET result = $2, updated_at = NOW() WHERE meeting_id = $1`, meetingID, result)
	if err != nil {
		return fmt.Errorf("replace job result: %w", err)
	}
	return nil
}

// Read returns the job row for a meeting, or nil when none exists.
func (r *JobRepo) Read(ctx context.Context, meetingID string) (*models.SummaryJob, error) {
	var j models.SummaryJob
	var errMsg *string
	err := r.db.Pool.QueryRow(ctx, `
SELECT meeting_id, status, result, error, chunk_count, processing_time, metadata,
       created_at, updated_at, start_time, end_time
FROM summary_processes
WHERE meeting_id = $1`, meetingID).
		Scan(&j.MeetingID, &j.Status, &j.Result, &errMsg, &j.ChunkCount, &j.ProcessingTime, &j.Metadata,
			&j.CreatedAt, &j.UpdatedAt, &j.StartTime, &j.EndTime)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read job: %w", err)
	}
	if errMsg != nil {
		j.Error = *errMsg
	}
	return &j, nil
}
