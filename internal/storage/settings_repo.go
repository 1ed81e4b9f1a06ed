package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"minuteflow/internal/models"
)

// SettingsRepo manages the single settings row holding the active model
// configuration and per-provider API keys.
type SettingsRepo struct {
	db *DB
}

func NewSettingsRepo(db *DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

const settingsRowID = "1"

var apiKeyColumns = map[string]string{
	"openai": "openai_api_key",
	"claude": "anthropic_api_key",
	"groq":   "groq_api_key",
	"ollama": "ollama_api_key",
}

// GetModelConfig returns the saved model configuration, or nil when settings
// were never saved.
func (r *SettingsRepo) GetModelConfig(ctx context.Context) (*models.ModelConfig, error) {
	var cfg models.ModelConfig
	var provider, model, whisper *string
	err := r.db.Pool.QueryRow(ctx, `
SELECT provider, model, whisper_model FROM settings WHERE id = $1`, settingsRowID).
		Scan(&provider, &model, &whisper)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get model config: %w", err)
	}
	if provider != nil {
		cfg.Provider = *provider
	}
	if model != nil {
		cfg.Model = *model
	}
	if whisper != nil {
		cfg.WhisperModel = *whisper
	}
	return &cfg, nil
}

// SaveModelConfig stores the active provider and model selection, creating
// the settings row if needed.
func (r *SettingsRepo) SaveModelConfig(ctx context.Context, cfg models.ModelConfig) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO settings (id, provider, model, whisper_model)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id)
DO UPDATE SET provider = EXCLUDED.provider, model = EXCLUDED.model, whisper_model = EXCLUDED.whisper_model`,
		settingsRowID, cfg.Provider, cfg.Model, cfg.WhisperModel,
	)
	if err != nil {
		return fmt.Errorf("save model config: %w", err)
	}
	return nil
}

// GetAPIKey returns the stored API key for a provider, or empty when none is
// stored. Providers without a key column (ollama can run keyless) still map
// to a column so a user-supplied key round-trips.
func (r *SettingsRepo) GetAPIKey(ctx context.Context, provider string) (string, error) {
	column, ok := apiKeyColumns[provider]
	if !ok {
		return "", fmt.Errorf("unsupported provider: %s", provider)
	}
	var key *string
	err := r.db.Pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM settings WHERE id = $1`, column), settingsRowID).
		Scan(&key)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get api key: %w", err)
	}
	if key == nil {
		return "", nil
	}
	return *key, nil
}

// SaveAPIKey stores the API key for a provider, creating the settings row if
// needed.
func (r *SettingsRepo) SaveAPIKey(ctx context.Context, provider, key string) error {
	column, ok := apiKeyColumns[provider]
	if !ok {
		return fmt.Errorf("unsupported provider: %s", provider)
	}
	query := fmt.Sprintf(`
INSERT INTO settings (id, %s) VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE SET %s = EXCLUDED.%s`, column, column, column)
	if _, err := r.db.Pool.Exec(ctx, query, settingsRowID, key); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	return nil
}
