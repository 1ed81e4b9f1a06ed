package activities

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"go.temporal.io/sdk/temporal"

	"minuteflow/internal/config"
	"minuteflow/internal/models"
	"minuteflow/internal/providers"
	"minuteflow/internal/storage"
	"minuteflow/internal/summary"
)

type Activities struct {
	cfg            config.Config
	jobRepo        *storage.JobRepo
	meetingRepo    *storage.MeetingRepo
	transcriptRepo *storage.TranscriptRepo
	settingsRepo   *storage.SettingsRepo
	providers      *providers.Manager
}

func New(cfg config.Config, db *storage.DB) *Activities {
	return &Activities{
		cfg:            cfg,
		jobRepo:        storage.NewJobRepo(db),
		meetingRepo:    storage.NewMeetingRepo(db),
		transcriptRepo: storage.NewTranscriptRepo(db),
		settingsRepo:   storage.NewSettingsRepo(db),
		providers:      providers.NewManager(),
	}
}

func (a *Activities) LoadTranscriptActivity(ctx context.Context, in LoadTranscriptInput) (LoadTranscriptOutput, error) {
	rec, err := a.transcriptRepo.GetFull(ctx, in.MeetingID)
	if err != nil {
		return LoadTranscriptOutput{}, err
	}
	if rec == nil {
		return LoadTranscriptOutput{Found: false}, nil
	}
	return LoadTranscriptOutput{
		Found:       true,
		Text:        rec.Text,
		Provider:    rec.Provider,
		ModelName:   rec.ModelName,
		ChunkSize:   rec.ChunkSize,
		Overlap:     rec.Overlap,
		MeetingName: rec.MeetingName,
	}, nil
}

// ResolveModelActivity settles which provider and model the job will use,
// falling back from the submitted values to the saved settings and finally the
// worker defaults, and verifies a credential exists for keyed providers.
func (a *Activities) ResolveModelActivity(ctx context.Context, in ResolveModelInput) (ResolveModelOutput, error) {
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	model := strings.TrimSpace(in.ModelName)

	if provider == "" || model == "" {
		saved, err := a.settingsRepo.GetModelConfig(ctx)
		if err != nil {
			return ResolveModelOutput{}, err
		}
		if saved != nil {
			if provider == "" {
				provider = strings.ToLower(strings.TrimSpace(saved.Provider))
			}
			if model == "" {
				model = strings.TrimSpace(saved.Model)
			}
		}
	}
	if provider == "" {
		provider = a.cfg.DefaultProvider
	}

	if _, err := a.providers.FindByName(provider); err != nil {
		return ResolveModelOutput{OK: false, ErrorMessage: err.Error()}, nil
	}
	if providers.RequiresAPIKey(provider) {
		key, err := a.storedAPIKey(ctx, provider)
		if err != nil {
			return ResolveModelOutput{}, err
		}
		if key == "" && envAPIKey(provider) == "" {
			return ResolveModelOutput{
				OK: false,
				ErrorMessage: fmt.Sprintf(
					"%s API key not configured. Please set your API key in the model settings.",
					providers.DisplayName(provider)),
			}, nil
		}
	}
	return ResolveModelOutput{Provider: provider, ModelName: model, OK: true}, nil
}

func (a *Activities) ExtractSegmentActivity(ctx context.Context, in ExtractSegmentInput) (ExtractSegmentOutput, error) {
	p, err := a.providers.FindByName(in.Provider)
	if err != nil {
		return ExtractSegmentOutput{}, temporal.NewNonRetryableApplicationError(err.Error(), "unsupported_provider", err)
	}
	key, err := a.storedAPIKey(ctx, in.Provider)
	if err != nil {
		return ExtractSegmentOutput{}, err
	}
	resp, info, err := p.Extract(ctx, providers.ExtractRequest{
		Operation: fmt.Sprintf("summarize-segment-%d", in.SegmentIndex),
		ModelName: in.ModelName,
		System:    summary.SystemPrompt(),
		Prompt:    in.Prompt,
		APIKey:    key,
	})
	if err != nil {
		errType := providers.ClassifyError(err)
		if !providers.Retryable(errType) {
			return ExtractSegmentOutput{}, temporal.NewNonRetryableApplicationError(
				fmt.Sprintf("extract segment %d via %s failed: %v", in.SegmentIndex, in.Provider, err),
				string(errType), err)
		}
		return ExtractSegmentOutput{}, fmt.Errorf("extract segment %d via %s failed: %w", in.SegmentIndex, in.Provider, err)
	}
	return ExtractSegmentOutput{Payload: resp.Payload, ProviderName: info.Name, Model: info.Model}, nil
}

func (a *Activities) WriteJobStatusActivity(ctx context.Context, in WriteJobStatusInput) error {
	if err := a.jobRepo.Update(ctx, in.MeetingID, storage.JobUpdate{
		Status:         in.Status,
		Result:         in.Result,
		Error:          in.Error,
		ChunkCount:     in.ChunkCount,
		ProcessingTime: in.ProcessingTime,
		Metadata:       in.Metadata,
	}); err != nil {
		return err
	}
	// A terminal write is meeting activity, so bump the meeting's updated_at.
	if models.IsTerminal(in.Status) {
		if err := a.meetingRepo.Touch(ctx, in.MeetingID); err != nil {
			log.Printf("failed to touch meeting %s after terminal write: %v", in.MeetingID, err)
		}
	}
	return nil
}

func (a *Activities) RenameMeetingActivity(ctx context.Context, in RenameMeetingInput) error {
	return a.meetingRepo.Rename(ctx, in.MeetingID, in.Title)
}

// storedAPIKey reads the settings key for keyless-capable providers too; it is
// only a hint and an empty result defers to the provider's environment lookup.
func (a *Activities) storedAPIKey(ctx context.Context, provider string) (string, error) {
	if !providers.RequiresAPIKey(provider) {
		return "", nil
	}
	return a.settingsRepo.GetAPIKey(ctx, provider)
}

func envAPIKey(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "groq":
		return os.Getenv("GROQ_API_KEY")
	case "claude":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}
