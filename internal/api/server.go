package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"minuteflow/internal/config"
	"minuteflow/internal/models"
	"minuteflow/internal/storage"
	"minuteflow/internal/summary"
	"minuteflow/internal/util"
	"minuteflow/internal/workflows"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	tclient "go.temporal.io/sdk/client"
)

type Server struct {
	cfg            config.Config
	db             *storage.DB
	meetingRepo    *storage.MeetingRepo
	transcriptRepo *storage.TranscriptRepo
	jobRepo        *storage.JobRepo
	settingsRepo   *storage.SettingsRepo
	temporal       tclient.Client
}

func NewServer(cfg config.Config) *Server {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.PostgresURL, cfg.PostgresMaxConns)
	if err != nil {
		panic(err)
	}
	tc, err := tclient.Dial(tclient.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		panic(err)
	}
	return &Server{
		cfg:            cfg,
		db:             db,
		meetingRepo:    storage.NewMeetingRepo(db),
		transcriptRepo: storage.NewTranscriptRepo(db),
		jobRepo:        storage.NewJobRepo(db),
		settingsRepo:   storage.NewSettingsRepo(db),
		temporal:       tc,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/process-transcript", s.handleProcessTranscript)
	mux.HandleFunc("/get-summary/", s.handleGetSummary)
	mux.HandleFunc("/get-summary-progress/", s.handleGetSummaryProgress)
	mux.HandleFunc("/save-meeting-summary", s.handleSaveMeetingSummary)
	mux.HandleFunc("/save-transcript", s.handleSaveTranscript)
	mux.HandleFunc("/search-transcripts", s.handleSearchTranscripts)
	mux.HandleFunc("/get-meetings", s.handleGetMeetings)
	mux.HandleFunc("/get-meeting/", s.handleGetMeeting)
	mux.HandleFunc("/save-meeting-title", s.handleSaveMeetingTitle)
	mux.HandleFunc("/delete-meeting", s.handleDeleteMeeting)
	mux.HandleFunc("/get-model-config", s.handleGetModelConfig)
	mux.HandleFunc("/save-model-config", s.handleSaveModelConfig)
	mux.HandleFunc("/get-api-key", s.handleGetAPIKey)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// processTranscriptRequest uses pointer chunk parameters so an omitted field
// falls back to the configured default while an explicit 0 stays 0.
type processTranscriptRequest struct {
	Text         string `json:"text"`
	Model        string `json:"model"`
	ModelName    string `json:"model_name"`
	MeetingID    string `json:"meeting_id"`
	ChunkSize    *int   `json:"chunk_size"`
	Overlap      *int   `json:"overlap"`
	CustomPrompt string `json:"custom_prompt"`
}

func (req processTranscriptRequest) chunkParams(cfg config.Config) (int, int) {
	chunkSize := cfg.ChunkSize
	if req.ChunkSize != nil && *req.ChunkSize > 0 {
		chunkSize = *req.ChunkSize
	}
	overlap := cfg.ChunkOverlap
	if req.Overlap != nil && *req.Overlap >= 0 {
		overlap = *req.Overlap
	}
	return chunkSize, overlap
}

func (req processTranscriptRequest) instructions(cfg config.Config) string {
	if strings.TrimSpace(req.CustomPrompt) == "" {
		return cfg.DefaultPrompt
	}
	return req.CustomPrompt
}

func (s *Server) handleProcessTranscript(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req processTranscriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeErr(w, http.StatusBadRequest, util.ErrEmptyTranscript)
		return
	}
	if len(req.Text) > s.cfg.MaxTranscriptBytes {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("transcript too large"))
		return
	}
	chunkSize, overlap := req.chunkParams(s.cfg)
	prompt := req.instructions(s.cfg)
	if req.MeetingID == "" {
		req.MeetingID = uuid.NewString()
	}

	meeting, err := s.meetingRepo.Get(r.Context(), req.MeetingID)
	if err != nil && !errors.Is(err, util.ErrMeetingNotFound) {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	meetingName := ""
	if meeting == nil {
		if err := s.meetingRepo.Create(r.Context(), models.Meeting{ID: req.MeetingID, Title: "New Meeting"}); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
	} else {
		meetingName = meeting.Title
	}

	// The job row and the transcript are persisted before the workflow starts
	// so the worker can load everything from the store.
	if err := s.jobRepo.UpsertPending(r.Context(), req.MeetingID); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	if err := s.transcriptRepo.SaveFull(r.Context(), models.TranscriptRecord{
		MeetingID:   req.MeetingID,
		Text:        req.Text,
		Provider:    req.Model,
		ModelName:   req.ModelName,
		ChunkSize:   chunkSize,
		Overlap:     overlap,
		MeetingName: meetingName,
	}); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	_, err = s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
		ID:                                       "summarize-" + req.MeetingID,
		TaskQueue:                                s.cfg.TemporalTaskQueue,
		WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}, workflows.TranscriptSummarizeWorkflow, workflows.SummarizeInput{
		MeetingID: req.MeetingID,
		Provider:  req.Model,
		ModelName: req.ModelName,
		Prompt:    prompt,
		ChunkSize: chunkSize,
		Overlap:   overlap,
	})
	if err != nil {
		writeErr(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"message":    "Processing started",
		"process_id": req.MeetingID,
	})
}

func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	meetingID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/get-summary/"), "/")
	if meetingID == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	job, err := s.jobRepo.Read(r.Context(), meetingID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	view, code := summary.Project(meetingID, job)
	writeJSON(w, code, view)
}

func (s *Server) handleGetSummaryProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	meetingID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/get-summary-progress/"), "/")
	if meetingID == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	var prog workflows.SummarizeProgress
	resp, err := s.temporal.QueryWorkflow(r.Context(), "summarize-"+meetingID, "", workflows.QueryGetSummaryProgress)
	if err != nil {
		// Fall back to the persisted job row when no live workflow can answer.
		job, jErr := s.jobRepo.Read(r.Context(), meetingID)
		if jErr != nil {
			writeErr(w, http.StatusInternalServerError, jErr)
			return
		}
		if job == nil {
			writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
			return
		}
		writeJSON(w, http.StatusOK, workflows.SummarizeProgress{
			MeetingID: meetingID,
			Status:    strings.ToLower(job.Status),
		})
		return
	}
	if err := resp.Get(&prog); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, prog)
}

func (s *Server) handleSaveMeetingSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		MeetingID string          `json:"meeting_id"`
		Data      json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if req.MeetingID == "" || len(req.Data) == 0 {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("meeting_id and data are required"))
		return
	}
	job, err := s.jobRepo.Read(r.Context(), req.MeetingID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	if job == nil {
		writeErr(w, http.StatusNotFound, fmt.Errorf("meeting not found"))
		return
	}
	if err := s.jobRepo.ReplaceResult(r.Context(), req.MeetingID, string(req.Data)); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Summary saved successfully"})
}

func (s *Server) handleSaveTranscript(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		MeetingTitle string `json:"meeting_title"`
		Transcripts  []struct {
			Text           string   `json:"text"`
			Timestamp      string   `json:"timestamp"`
			AudioStartTime *float64 `json:"audio_start_time"`
			AudioEndTime   *float64 `json:"audio_end_time"`
			Duration       *float64 `json:"duration"`
		} `json:"transcripts"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if strings.TrimSpace(req.MeetingTitle) == "" {
		req.MeetingTitle = "New Meeting"
	}
	meetingID := uuid.NewString()
	if err := s.meetingRepo.Create(r.Context(), models.Meeting{ID: meetingID, Title: req.MeetingTitle}); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	segments := make([]models.TranscriptSegment, 0, len(req.Transcripts))
	for _, t := range req.Transcripts {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		segments = append(segments, models.TranscriptSegment{
			MeetingID:      meetingID,
			Text:           t.Text,
			Timestamp:      t.Timestamp,
			AudioStartTime: t.AudioStartTime,
			AudioEndTime:   t.AudioEndTime,
			Duration:       t.Duration,
		})
	}
	if err := s.transcriptRepo.SaveSegments(r.Context(), segments); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"meeting_id": meetingID})
}

func (s *Server) handleSearchTranscripts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("query is required"))
		return
	}
	results, err := s.transcriptRepo.Search(r.Context(), req.Query)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleGetMeetings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	meetings, err := s.meetingRepo.List(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"meetings": meetings})
}

func (s *Server) handleGetMeeting(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	meetingID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/get-meeting/"), "/")
	if meetingID == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	meeting, err := s.meetingRepo.Get(r.Context(), meetingID)
	if errors.Is(err, util.ErrMeetingNotFound) {
		writeErr(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	segments, err := s.transcriptRepo.ListSegments(r.Context(), meetingID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"meeting": meeting, "transcripts": segments})
}

func (s *Server) handleSaveMeetingTitle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		MeetingID string `json:"meeting_id"`
		Title     string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if req.MeetingID == "" || strings.TrimSpace(req.Title) == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("meeting_id and title are required"))
		return
	}
	if _, err := s.meetingRepo.Get(r.Context(), req.MeetingID); err != nil {
		if errors.Is(err, util.ErrMeetingNotFound) {
			writeErr(w, http.StatusNotFound, err)
			return
		}
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	if err := s.meetingRepo.Rename(r.Context(), req.MeetingID, req.Title); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Meeting title saved"})
}

func (s *Server) handleDeleteMeeting(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		MeetingID string `json:"meeting_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if req.MeetingID == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("meeting_id is required"))
		return
	}
	if err := s.meetingRepo.Delete(r.Context(), req.MeetingID); err != nil {
		if errors.Is(err, util.ErrMeetingNotFound) {
			writeErr(w, http.StatusNotFound, err)
			return
		}
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Meeting deleted successfully"})
}

func (s *Server) handleGetModelConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	cfg, err := s.settingsRepo.GetModelConfig(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	if cfg == nil {
		cfg = &models.ModelConfig{Provider: s.cfg.DefaultProvider}
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleSaveModelConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req models.ModelConfig
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if strings.TrimSpace(req.Provider) == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("provider is required"))
		return
	}
	if err := s.settingsRepo.SaveModelConfig(r.Context(), req); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	if strings.TrimSpace(req.APIKey) != "" {
		if err := s.settingsRepo.SaveAPIKey(r.Context(), strings.ToLower(req.Provider), req.APIKey); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Model config saved"})
}

func (s *Server) handleGetAPIKey(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		Provider string `json:"provider"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if strings.TrimSpace(req.Provider) == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("provider is required"))
		return
	}
	key, err := s.settingsRepo.GetAPIKey(r.Context(), strings.ToLower(req.Provider))
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"api_key": key})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "MS-API-4000"
	raw := ""
	if err != nil {
		raw = strings.ToLower(err.Error())
	}

	switch {
	case status >= 500:
		switch {
		case strings.Contains(raw, "relation") && strings.Contains(raw, "does not exist"):
			return apiError{
				Code:    "MS-DB-5001",
				Message: "Database schema is not initialized. Run migrations and retry.",
			}
		case strings.Contains(raw, "connect"), strings.Contains(raw, "dial tcp"), strings.Contains(raw, "connection refused"):
			return apiError{
				Code:    "MS-DB-5002",
				Message: "Database connection is unavailable. Check local services and retry.",
			}
		default:
			return apiError{
				Code:    "MS-API-5000",
				Message: "Internal server error. Please retry or check service logs.",
			}
		}
	case status == http.StatusBadRequest:
		code = "MS-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusNotFound:
		code = "MS-API-4004"
		msg = "Requested resource was not found."
	case status == http.StatusConflict:
		code = "MS-API-4009"
		msg = "A summarization is already running for this meeting."
	case status == http.StatusMethodNotAllowed:
		code = "MS-API-4005"
		msg = "This endpoint does not support the requested method."
	}

	// For 4xx, keep user-safe validation context only.
	if status >= 400 && status < 500 && err != nil {
		switch {
		case strings.Contains(raw, "empty transcript text provided"):
			msg = "Empty transcript text provided"
		case strings.Contains(raw, "transcript too large"):
			msg = "Transcript exceeds the maximum accepted size."
		case strings.Contains(raw, "invalid json"):
			msg = "Malformed JSON request body."
		case strings.Contains(raw, "is required"), strings.Contains(raw, "are required"):
			msg = err.Error()
		case strings.Contains(raw, "unsupported provider"):
			msg = err.Error()
		case status == http.StatusNotFound && strings.Contains(raw, "meeting not found"):
			msg = "Meeting not found."
		}
	}

	return apiError{Code: code, Message: msg}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
