package repository

import (
	"context"
	"os"
	"strings"
	"sync"

	"formgate/internal/forms"
)

// MemorySettingsRepository is an in-process settings store. It backs
// deployments that run without a database (settings supplied via environment)
// and is the fake of choice in tests.
type MemorySettingsRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemorySettings creates an in-memory settings store seeded with the given
// values. A nil seed is fine.
func NewMemorySettings(seed map[string]string) *MemorySettingsRepository {
	values := make(map[string]string, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &MemorySettingsRepository{values: values}
}

// NewMemorySettingsFromEnv seeds the store from environment variables. Every
// known settings key of every variant is read from its upper-cased form, e.g.
// contact_form_recaptcha_secret_key <- CONTACT_FORM_RECAPTCHA_SECRET_KEY.
func NewMemorySettingsFromEnv() *MemorySettingsRepository {
	seed := make(map[string]string)
	for _, variant := range forms.All() {
		for _, key := range variant.SettingKeys() {
			if value := os.Getenv(strings.ToUpper(key)); value != "" {
				seed[key] = value
			}
		}
	}
	return NewMemorySettings(seed)
}

func (r *MemorySettingsRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values[key], nil
}

func (r *MemorySettingsRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

func (r *MemorySettingsRepository) All(_ context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]string, len(r.values))
	for k, v := range r.values {
		result[k] = v
	}
	return result, nil
}
