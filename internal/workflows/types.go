package workflows

type SummarizeInput struct {
	MeetingID string `json:"meeting_id"`
	Provider  string `json:"provider,omitempty"`
	ModelName string `json:"model_name,omitempty"`
	Prompt    string `json:"prompt,omitempty"`
	ChunkSize int    `json:"chunk_size,omitempty"`
	Overlap   int    `json:"overlap,omitempty"`
}

type SummarizeProgress struct {
	MeetingID     string `json:"meeting_id"`
	CurrentStep   string `json:"current_step"`
	TotalSegments int    `json:"total_segments"`
	DoneSegments  int    `json:"done_segments"`
	FailedCalls   int    `json:"failed_calls"`
	Status        string `json:"status"`
}
