package repository

import (
	"context"
	"fmt"

	"formgate/internal/db/ent"
	"formgate/internal/db/ent/setting"
)

// SettingsRepository is the key-value settings store read by the submission
// pipeline on every request and written through the admin surface. A missing
// key yields an empty string, not an error, matching the semantics the
// WordPress options API gave the original plugins.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}

// EntSettingsRepository is the Postgres-backed implementation.
type EntSettingsRepository struct {
	client *ent.Client
}

// NewSettingsRepository creates a new Ent-backed settings repository.
func NewSettingsRepository(client *ent.Client) *EntSettingsRepository {
	return &EntSettingsRepository{client: client}
}

func (r *EntSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	row, err := r.client.Setting.Query().
		Where(setting.KeyEQ(key)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return row.Value, nil
}

// Set writes a key in one upsert statement, so concurrent writers to a new
// key cannot race each other into the unique constraint.
func (r *EntSettingsRepository) Set(ctx context.Context, key, value string) error {
	err := r.client.Setting.Create().
		SetKey(key).
		SetValue(value).
		OnConflictColumns(setting.FieldKey).
		UpdateNewValues().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}

func (r *EntSettingsRepository) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.client.Setting.Query().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	result := make(map[string]string, len(rows))
	for _, row := range rows {
		result[row.Key] = row.Value
	}
	return result, nil
}
