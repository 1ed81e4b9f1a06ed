package models

import (
	"strings"
	"time"
)

// Job statuses as persisted in summary_processes. Writes normalize to upper
// case; reads compare case-insensitively.
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// IsTerminal reports whether a status ends a job's lifecycle.
func IsTerminal(status string) bool {
	s := strings.ToUpper(strings.TrimSpace(status))
	return s == StatusCompleted || s == StatusFailed
}

type Meeting struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	FolderPath string    `json:"folder_path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TranscriptSegment is one recorded utterance row, saved independently of
// summarization.
type TranscriptSegment struct {
	MeetingID      string   `json:"meeting_id"`
	Text           string   `json:"text"`
	Timestamp      string   `json:"timestamp"`
	AudioStartTime *float64 `json:"audio_start_time,omitempty"`
	AudioEndTime   *float64 `json:"audio_end_time,omitempty"`
	Duration       *float64 `json:"duration,omitempty"`
}

// TranscriptRecord is the single full transcript kept per meeting together
// with the generation parameters it was submitted with.
type TranscriptRecord struct {
	MeetingID   string    `json:"meeting_id"`
	Text        string    `json:"transcript_text"`
	Provider    string    `json:"model"`
	ModelName   string    `json:"model_name"`
	ChunkSize   int       `json:"chunk_size"`
	Overlap     int       `json:"overlap"`
	MeetingName string    `json:"meeting_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SummaryJob is the one job record per meeting in summary_processes.
// Result holds the serialized canonical summary once the job completes;
// Error holds the sanitized failure description once it fails.
type SummaryJob struct {
	MeetingID      string     `json:"meeting_id"`
	Status         string     `json:"status"`
	Result         *string    `json:"result,omitempty"`
	Error          string     `json:"error,omitempty"`
	ChunkCount     *int       `json:"chunk_count,omitempty"`
	ProcessingTime *float64   `json:"processing_time,omitempty"`
	Metadata       *string    `json:"metadata,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	StartTime      *time.Time `json:"start_time,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty"`
}

type ModelConfig struct {
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	WhisperModel string `json:"whisperModel"`
	APIKey       string `json:"apiKey,omitempty"`
}

type SearchResult struct {
	MeetingID    string `json:"id"`
	Title        string `json:"title"`
	MatchContext string `json:"matchContext"`
	Timestamp    string `json:"timestamp"`
}
