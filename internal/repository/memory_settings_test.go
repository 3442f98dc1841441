package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySettings(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySettings(map[string]string{"contact_form_email": "owner@example.com"})

	got, err := repo.Get(ctx, "contact_form_email")
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", got)

	// Missing keys read as empty, not as errors.
	got, err = repo.Get(ctx, "contact_form_webhook_endpoint")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	require.NoError(t, repo.Set(ctx, "contact_form_webhook_endpoint", "https://hooks.example.com/x"))
	got, err = repo.Get(ctx, "contact_form_webhook_endpoint")
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.example.com/x", got)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// Concurrent writers to the same fresh key must all succeed; the store
// contract has no check-then-act window for a loser to fall into.
func TestMemorySettingsConcurrentSet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySettings(nil)

	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Set(ctx, "contact_form_webhook_endpoint", "https://hooks.example.com/x")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.Get(ctx, "contact_form_webhook_endpoint")
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.example.com/x", got)
}

func TestMemorySettingsFromEnv(t *testing.T) {
	t.Setenv("CONTACT_FORM_RECAPTCHA_SECRET_KEY", "shhh")
	t.Setenv("WHITEPAPER_EMAIL", "docs@example.com")

	repo := NewMemorySettingsFromEnv()

	got, err := repo.Get(context.Background(), "contact_form_recaptcha_secret_key")
	require.NoError(t, err)
	assert.Equal(t, "shhh", got)

	got, err = repo.Get(context.Background(), "whitepaper_email")
	require.NoError(t, err)
	assert.Equal(t, "docs@example.com", got)
}
