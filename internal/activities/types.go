package activities

type LoadTranscriptInput struct {
	MeetingID string `json:"meeting_id"`
}

type LoadTranscriptOutput struct {
	Found       bool   `json:"found"`
	Text        string `json:"text"`
	Provider    string `json:"provider"`
	ModelName   string `json:"model_name"`
	ChunkSize   int    `json:"chunk_size"`
	Overlap     int    `json:"overlap"`
	MeetingName string `json:"meeting_name"`
}

type ResolveModelInput struct {
	Provider  string `json:"provider"`
	ModelName string `json:"model_name"`
}

// ResolveModelOutput carries the provider selection after falling back to the
// saved settings and the worker defaults. When OK is false, ErrorMessage holds
// the user-facing reason the job cannot run.
type ResolveModelOutput struct {
	Provider     string `json:"provider"`
	ModelName    string `json:"model_name"`
	OK           bool   `json:"ok"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type ExtractSegmentInput struct {
	MeetingID    string `json:"meeting_id"`
	SegmentIndex int    `json:"segment_index"`
	Provider     string `json:"provider"`
	ModelName    string `json:"model_name"`
	Prompt       string `json:"prompt"`
}

type ExtractSegmentOutput struct {
	Payload      string `json:"payload"`
	ProviderName string `json:"provider_name"`
	Model        string `json:"model"`
}

type WriteJobStatusInput struct {
	MeetingID      string   `json:"meeting_id"`
	Status         string   `json:"status"`
	Result         *string  `json:"result,omitempty"`
	Error          *string  `json:"error,omitempty"`
	ChunkCount     *int     `json:"chunk_count,omitempty"`
	ProcessingTime *float64 `json:"processing_time,omitempty"`
	Metadata       *string  `json:"metadata,omitempty"`
}

type RenameMeetingInput struct {
	MeetingID string `json:"meeting_id"`
	Title     string `json:"title"`
}
