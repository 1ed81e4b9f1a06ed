package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5"

	"minuteflow/internal/models"
	"minuteflow/internal/util"
)

// TranscriptRepo persists both the full transcript submitted for
// summarization (transcript_chunks, one row per meeting) and the individual
// live segments (transcripts, many rows per meeting).
type TranscriptRepo struct {
	db *DB
}

func NewTranscriptRepo(db *DB) *TranscriptRepo {
	return &TranscriptRepo{db: db}
}

// SaveFull stores or replaces the single full transcript record for a
// meeting, sanitizing the text before persistence.
func (r *TranscriptRepo) SaveFull(ctx context.Context, rec models.TranscriptRecord) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO transcript_chunks (meeting_id, meeting_name, transcript_text, model, model_name, chunk_size, overlap, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
ON CONFLICT (meeting_id)
DO UPDATE SET
  meeting_name = EXCLUDED.meeting_name,
  transcript_text = EXCLUDED.transcript_text,
  model = EXCLUDED.model,
  model_name = EXCLUDED.model_name,
  chunk_size = EXCLUDED.chunk_size,
  overlap = EXCLUDED.overlap,
  created_at = NOW()`,
		rec.MeetingID, rec.MeetingName, util.SanitizeText(rec.Text),
		rec.Provider, rec.ModelName, rec.ChunkSize, rec.Overlap,
	)
	if err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}
	return nil
}

// GetFull returns the stored full transcript for a meeting, or nil when none
// was ever submitted.
func (r *TranscriptRepo) GetFull(ctx context.Context, meetingID string) (*models.TranscriptRecord, error) {
	var rec models.TranscriptRecord
	var name *string
	err := r.db.Pool.QueryRow(ctx, `
SELECT meeting_id, meeting_name, transcript_text, model, model_name, chunk_size, overlap, created_at
FROM transcript_chunks
WHERE meeting_id = $1`, meetingID).
		Scan(&rec.MeetingID, &name, &rec.Text, &rec.Provider, &rec.ModelName, &rec.ChunkSize, &rec.Overlap, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transcript: %w", err)
	}
	if name != nil {
		rec.MeetingName = *name
	}
	return &rec, nil
}

// SaveSegments appends live transcript segments for a meeting.
func (r *TranscriptRepo) SaveSegments(ctx context.Context, segments []models.TranscriptSegment) error {
	for _, seg := range segments {
		_, err := r.db.Pool.Exec(ctx, `
INSERT INTO transcripts (meeting_id, transcript, timestamp, audio_start_time, audio_end_time, duration)
VALUES ($1, $2, $3, $4, $5, $6)`,
			seg.MeetingID, util.SanitizeText(seg.Text), seg.Timestamp,
			seg.AudioStartTime, seg.AudioEndTime, seg.Duration,
		)
		if err != nil {
			return fmt.Errorf("save transcript segment: %w", err)
		}
	}
	return nil
}

// ListSegments returns the live segments of a meeting in recorded order.
func (r *TranscriptRepo) ListSegments(ctx context.Context, meetingID string) ([]models.TranscriptSegment, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT meeting_id, transcript, timestamp, audio_start_time, audio_end_time, duration
FROM transcripts
WHERE meeting_id = $1
ORDER BY id ASC`, meetingID)
	if err != nil {
		return nil, fmt.Errorf("list transcript segments: %w", err)
	}
	defer rows.Close()

	out := make([]models.TranscriptSegment, 0)
	for rows.Next() {
		var seg models.TranscriptSegment
		if err := rows.Scan(&seg.MeetingID, &seg.Text, &seg.Timestamp, &seg.AudioStartTime, &seg.AudioEndTime, &seg.Duration); err != nil {
			return nil, fmt.Errorf("scan transcript segment: %w", err)
		}
		out = append(out, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcript segments: %w", err)
	}
	return out, nil
}

// Search finds meetings whose transcripts contain the query, matching both
// live segments and full transcripts case-insensitively. Each hit carries a
// short context window around the first match.
func (r *TranscriptRepo) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := r.db.Pool.Query(ctx, `
SELECT m.id, m.title, t.transcript, t.timestamp
FROM transcripts t
JOIN meetings m ON m.id = t.meeting_id
WHERE LOWER(t.transcript) LIKE $1
UNION ALL
SELECT m.id, m.title, c.transcript_text, c.created_at::text
FROM transcript_chunks c
JOIN meetings m ON m.id = c.meeting_id
WHERE LOWER(c.transcript_text) LIKE $1`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search transcripts: %w", err)
	}
	defer rows.Close()

	out := make([]models.SearchResult, 0)
	seen := make(map[string]bool)
	for rows.Next() {
		var res models.SearchResult
		var text string
		if err := rows.Scan(&res.MeetingID, &res.Title, &text, &res.Timestamp); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		res.MatchContext = matchContext(text, query)
		key := res.MeetingID + "\x00" + res.MatchContext
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search results: %w", err)
	}
	return out, nil
}

// matchContext extracts up to 100 runes either side of the first
// case-insensitive occurrence of query in text. Windowing is done on runes so
// a boundary never splits a multi-byte character.
func matchContext(text, query string) string {
	textRunes := []rune(text)
	queryRunes := []rune(strings.ToLower(query))
	idx := runeIndexFold(textRunes, queryRunes)
	if idx < 0 {
		if len(textRunes) > 200 {
			return string(textRunes[:200])
		}
		return text
	}
	start := idx - 100
	if start < 0 {
		start = 0
	}
	end := idx + len(queryRunes) + 100
	if end > len(textRunes) {
		end = len(textRunes)
	}
	return string(textRunes[start:end])
}

// runeIndexFold finds the first case-insensitive occurrence of needle in
// haystack, as rune offsets. needle must already be lowercased.
func runeIndexFold(haystack, needle []rune) int {
	if len(needle) == 0 {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j, q := range needle {
			if unicode.ToLower(haystack[i+j]) != q {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
