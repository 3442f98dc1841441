package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayPostsJSON(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewWebhookService(time.Second)
	err := svc.Relay(context.Background(), server.URL, []byte(`{"first_name":"Jane"}`))

	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"first_name":"Jane"}`, string(gotBody))
}

func TestRelayNon2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewWebhookService(time.Second)
	err := svc.Relay(context.Background(), server.URL, []byte(`{}`))

	assert.ErrorContains(t, err, "502")
}

func TestRelayTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	svc := NewWebhookService(time.Second)
	err := svc.Relay(context.Background(), server.URL, []byte(`{}`))

	assert.Error(t, err)
}

func TestRelayEmptyURLIsError(t *testing.T) {
	svc := NewWebhookService(time.Second)
	err := svc.Relay(context.Background(), "", []byte(`{}`))

	assert.ErrorIs(t, err, ErrNotConfigured)
}
