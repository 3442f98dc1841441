package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAccepted(t *testing.T) {
	var gotSecret, gotResponse string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotSecret = r.PostFormValue("secret")
		gotResponse = r.PostFormValue("response")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "score": 0.9, "action": "submit"}`))
	}))
	defer server.Close()

	svc := NewRecaptchaService(server.URL, 0.5, time.Second)
	result := svc.Verify(context.Background(), "tok", "secret")

	assert.Equal(t, VerificationAccepted, result.Status)
	assert.InDelta(t, 0.9, result.Score, 0.0001)
	assert.Equal(t, "secret", gotSecret)
	assert.Equal(t, "tok", gotResponse)
}

func TestVerifyLowScoreRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "score": 0.2}`))
	}))
	defer server.Close()

	svc := NewRecaptchaService(server.URL, 0.5, time.Second)
	result := svc.Verify(context.Background(), "tok", "secret")

	assert.Equal(t, VerificationRejected, result.Status)
	assert.InDelta(t, 0.2, result.Score, 0.0001)
	assert.Contains(t, result.Reason, "score too low")
}

func TestVerifyFailureRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
	}))
	defer server.Close()

	svc := NewRecaptchaService(server.URL, 0.5, time.Second)
	result := svc.Verify(context.Background(), "tok", "secret")

	assert.Equal(t, VerificationRejected, result.Status)
	assert.Contains(t, result.Reason, "invalid-input-response")
}

func TestVerifyBoundaryScoreAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "score": 0.5}`))
	}))
	defer server.Close()

	svc := NewRecaptchaService(server.URL, 0.5, time.Second)
	result := svc.Verify(context.Background(), "tok", "secret")

	assert.Equal(t, VerificationAccepted, result.Status)
}

func TestVerifyTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	svc := NewRecaptchaService(server.URL, 0.5, time.Second)
	result := svc.Verify(context.Background(), "tok", "secret")

	assert.Equal(t, VerificationTransportError, result.Status)
}

func TestVerifyMalformedResponseIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer server.Close()

	svc := NewRecaptchaService(server.URL, 0.5, time.Second)
	result := svc.Verify(context.Background(), "tok", "secret")

	assert.Equal(t, VerificationTransportError, result.Status)
}
