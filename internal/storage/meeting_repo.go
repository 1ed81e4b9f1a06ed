package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"minuteflow/internal/models"
	"minuteflow/internal/util"
)

type MeetingRepo struct {
	db *DB
}

func NewMeetingRepo(db *DB) *MeetingRepo {
	return &MeetingRepo{db: db}
}

// Create inserts a new meeting. Duplicates are an error: meeting identity is
// external and there must never be two records for one id or title.
func (r *MeetingRepo) Create(ctx context.Context, m models.Meeting) error {
	tag, err := r.db.Pool.Exec(ctx, `
INSERT INTO meetings (id, title, folder_path, created_at, updated_at)
VALUES ($1, $2, NULLIF($3,''), NOW(), NOW())
ON CONFLICT (id) DO NOTHING`,
		m.ID, m.Title, m.FolderPath,
	)
	if err != nil {
		return fmt.Errorf("create meeting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("meeting with ID %s already exists", m.ID)
	}
	return nil
}

func (r *MeetingRepo) Get(ctx context.Context, meetingID string) (*models.Meeting, error) {
	var m models.Meeting
	var folder *string
	err := r.db.Pool.QueryRow(ctx, `
SELECT id, title, folder_path, created_at, updated_at FROM meetings WHERE id = $1`, meetingID).
		Scan(&m.ID, &m.Title, &folder, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, util.ErrMeetingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get meeting: %w", err)
	}
	if folder != nil {
		m.FolderPath = *folder
	}
	return &m, nil
}

func (r *MeetingRepo) List(ctx context.Context) ([]models.Meeting, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT id, title, created_at, updated_at FROM meetings ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	out := make([]models.Meeting, 0)
	for rows.Next() {
		var m models.Meeting
		if err := rows.Scan(&m.ID, &m.Title, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meetings: %w", err)
	}
	return out, nil
}

// Rename updates the meeting title and mirrors it onto the stored transcript
// record so both views of the meeting agree.
func (r *MeetingRepo) Rename(ctx context.Context, meetingID, title string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin rename tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `UPDATE meetings SET title = $2, updated_at = NOW() WHERE id = $1`, meetingID, title); err != nil {
		return fmt.Errorf("rename meeting: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE transcript_chunks SET meeting_name = $2 WHERE meeting_id = $1`, meetingID, title); err != nil {
		return fmt.Errorf("rename transcript record: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit rename tx: %w", err)
	}
	return nil
}

// Touch bumps updated_at, used when an associated record changes.
func (r *MeetingRepo) Touch(ctx context.Context, meetingID string) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE meetings SET updated_at = NOW() WHERE id = $1`, meetingID)
	if err != nil {
		return fmt.Errorf("touch meeting: %w", err)
	}
	return nil
}

// Delete removes a meeting and every associated record in one transaction.
func (r *MeetingRepo) Delete(ctx context.Context, meetingID string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, q := range []string{
		`DELETE FROM transcript_chunks WHERE meeting_id = $1`,
		`DELETE FROM summary_processes WHERE meeting_id = $1`,
		`DELETE FROM transcripts WHERE meeting_id = $1`,
	} {
		if _, err := tx.Exec(ctx, q, meetingID); err != nil {
			return fmt.Errorf("delete meeting data: %w", err)
		}
	}
	tag, err := tx.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, meetingID)
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return util.ErrMeetingNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete tx: %w", err)
	}
	return nil
}
