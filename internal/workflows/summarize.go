package workflows

import (
	"encoding/json"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"minuteflow/internal/activities"
	"minuteflow/internal/models"
	"minuteflow/internal/summary"
	"minuteflow/internal/util"
)

const QueryGetSummaryProgress = "GetSummaryProgress"

// summaryMetadata is stored alongside the result for later inspection.
type summaryMetadata struct {
	Provider      string `json:"provider"`
	Model         string `json:"model"`
	TotalSegments int    `json:"total_segments"`
	MergedCount   int    `json:"merged_count"`
	DroppedCount  int    `json:"dropped_count"`
	FailedCalls   int    `json:"failed_calls"`
}

// TranscriptSummarizeWorkflow drives one summarization job end to end: load
// the stored transcript, plan the segment windows, extract a partial summary
// per segment, fold the partials into the canonical document, and record the
// terminal status. Segment failures are tolerated; the job only fails when no
// segment at all produced a usable payload.
func TranscriptSummarizeWorkflow(ctx workflow.Context, input SummarizeInput) (string, error) {
	progress := SummarizeProgress{MeetingID: input.MeetingID, CurrentStep: "init", Status: "processing"}
	if err := workflow.SetQueryHandler(ctx, QueryGetSummaryProgress, func() (SummarizeProgress, error) {
		return progress, nil
	}); err != nil {
		return "", err
	}

	dbCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	})
	llmCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    3,
		},
	})
	startedAt := workflow.Now(ctx)

	failJob := func(message string) (string, error) {
		progress.Status = "failed"
		progress.CurrentStep = "failed"
		writeErr := workflow.ExecuteActivity(dbCtx, "WriteJobStatusActivity", activities.WriteJobStatusInput{
			MeetingID: input.MeetingID,
			Status:    models.StatusFailed,
			Error:     &message,
		}).Get(dbCtx, nil)
		if writeErr != nil {
			workflow.GetLogger(ctx).Error("failed to record job failure", "meeting_id", input.MeetingID, "error", writeErr)
		}
		return "failed", nil
	}

	progress.CurrentStep = "load_transcript"
	var transcript activities.LoadTranscriptOutput
	if err := workflow.ExecuteActivity(dbCtx, "LoadTranscriptActivity", activities.LoadTranscriptInput{
		MeetingID: input.MeetingID,
	}).Get(dbCtx, &transcript); err != nil {
		return failJob("Failed to load transcript: " + err.Error())
	}
	if !transcript.Found || transcript.Text == "" {
		return failJob(util.ErrEmptyTranscript.Error())
	}

	progress.CurrentStep = "resolve_model"
	provider := input.Provider
	if provider == "" {
		provider = transcript.Provider
	}
	modelName := input.ModelName
	if modelName == "" {
		modelName = transcript.ModelName
	}
	var resolved activities.ResolveModelOutput
	if err := workflow.ExecuteActivity(dbCtx, "ResolveModelActivity", activities.ResolveModelInput{
		Provider:  provider,
		ModelName: modelName,
	}).Get(dbCtx, &resolved); err != nil {
		return failJob("Failed to resolve model configuration: " + err.Error())
	}
	if !resolved.OK {
		return failJob(resolved.ErrorMessage)
	}

	progress.CurrentStep = "plan_segments"
	chunkSize := input.ChunkSize
	if chunkSize <= 0 {
		chunkSize = transcript.ChunkSize
	}
	overlap := input.Overlap
	if overlap < 0 {
		overlap = transcript.Overlap
	}
	textLen := len([]rune(transcript.Text))
	segments, err := summary.PlanSegments(textLen, chunkSize, overlap)
	if err != nil {
		return failJob("Invalid chunking parameters: " + err.Error())
	}
	progress.TotalSegments = len(segments)

	progress.CurrentStep = "extract_segments"
	payloads := make([]string, 0, len(segments))
	usedModel := resolved.ModelName
	for i, seg := range segments {
		prompt := summary.BuildSegmentPrompt(input.Prompt, summary.SliceSegment(transcript.Text, seg))
		var out activities.ExtractSegmentOutput
		err := workflow.ExecuteActivity(llmCtx, "ExtractSegmentActivity", activities.ExtractSegmentInput{
			MeetingID:    input.MeetingID,
			SegmentIndex: i,
			Provider:     resolved.Provider,
			ModelName:    resolved.ModelName,
			Prompt:       prompt,
		}).Get(llmCtx, &out)
		if err != nil {
			progress.FailedCalls++
			workflow.GetLogger(ctx).Error("segment extraction failed",
				"meeting_id", input.MeetingID, "segment", i, "error", err)
			continue
		}
		if out.Model != "" {
			usedModel = out.Model
		}
		payloads = append(payloads, out.Payload)
		progress.DoneSegments++
	}

	progress.CurrentStep = "merge"
	doc, merged, dropped := summary.Merge(payloads)
	if merged == 0 {
		return failJob(util.ErrNoChunksProcessed.Error())
	}

	if doc.MeetingName != "" && doc.MeetingName != transcript.MeetingName {
		progress.CurrentStep = "rename_meeting"
		if err := workflow.ExecuteActivity(dbCtx, "RenameMeetingActivity", activities.RenameMeetingInput{
			MeetingID: input.MeetingID,
			Title:     doc.MeetingName,
		}).Get(dbCtx, nil); err != nil {
			workflow.GetLogger(ctx).Error("failed to rename meeting from summary",
				"meeting_id", input.MeetingID, "error", err)
		}
	}

	progress.CurrentStep = "store_result"
	resultBytes, err := json.Marshal(doc)
	if err != nil {
		return failJob("Failed to serialize summary: " + err.Error())
	}
	result := string(resultBytes)
	metaBytes, _ := json.Marshal(summaryMetadata{
		Provider:      resolved.Provider,
		Model:         usedModel,
		TotalSegments: len(segments),
		MergedCount:   merged,
		DroppedCount:  dropped,
		FailedCalls:   progress.FailedCalls,
	})
	metadata := string(metaBytes)
	chunkCount := merged
	processingTime := workflow.Now(ctx).Sub(startedAt).Seconds()

	if err := workflow.ExecuteActivity(dbCtx, "WriteJobStatusActivity", activities.WriteJobStatusInput{
		MeetingID:      input.MeetingID,
		Status:         models.StatusCompleted,
		Result:         &result,
		ChunkCount:     &chunkCount,
		ProcessingTime: &processingTime,
		Metadata:       &metadata,
	}).Get(dbCtx, nil); err != nil {
		workflow.GetLogger(ctx).Error("failed to record job completion",
			"meeting_id", input.MeetingID, "error", err)
	}

	progress.CurrentStep = "done"
	progress.Status = "completed"
	return "completed", nil
}
