package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedAlerts struct {
	mu       sync.Mutex
	messages []*slack.WebhookMessage
}

func (r *recordedAlerts) post(_ context.Context, _ string, msg *slack.WebhookMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return nil
}

func (r *recordedAlerts) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

func setupAlertMiddleware(webhookURL string) (*ErrorAlertMiddleware, *recordedAlerts) {
	recorder := &recordedAlerts{}
	m := NewErrorAlertMiddleware(SlackAlertConfig{
		WebhookURL:  webhookURL,
		Environment: "dev",
		AppName:     "firstmessage",
	})
	m.postWebhook = recorder.post
	return m, recorder
}

func TestWrapCommandHandler_AlertsOnError(t *testing.T) {
	m, recorder := setupAlertMiddleware("https://hooks.slack.test/alert")

	wrapped := m.WrapCommandHandler("firstmessage", func(ctx context.Context) error {
		return errors.New("interaction token expired")
	})
	wrapped(context.Background())
	m.Wait()

	require.Equal(t, 1, recorder.count())
	assert.Contains(t, recorder.messages[0].Text, "[dev] [firstmessage] Error Alert")
	assert.Contains(t, recorder.messages[0].Text, "Command: /firstmessage: interaction token expired")
}

func TestWrapCommandHandler_DeduplicatesWithinCooldown(t *testing.T) {
	m, recorder := setupAlertMiddleware("https://hooks.slack.test/alert")

	wrapped := m.WrapCommandHandler("firstmessage", func(ctx context.Context) error {
		return errors.New("same failure")
	})
	for i := 0; i < 3; i++ {
		wrapped(context.Background())
	}
	m.Wait()

	assert.Equal(t, 1, recorder.count())
}

func TestWrapCommandHandler_RecoversPanic(t *testing.T) {
	m, recorder := setupAlertMiddleware("https://hooks.slack.test/alert")

	wrapped := m.WrapCommandHandler("firstmessage", func(ctx context.Context) error {
		panic("boom")
	})

	assert.NotPanics(t, func() { wrapped(context.Background()) })
	m.Wait()

	require.Equal(t, 1, recorder.count())
	assert.Contains(t, recorder.messages[0].Text, "PANIC - boom")
}

func TestWrapCommandHandler_NoWebhookConfigured(t *testing.T) {
	m, recorder := setupAlertMiddleware("")

	wrapped := m.WrapCommandHandler("firstmessage", func(ctx context.Context) error {
		return errors.New("failure")
	})
	wrapped(context.Background())
	m.Wait()

	assert.Equal(t, 0, recorder.count())
}

func TestWrapCommandHandler_SuccessDoesNotAlert(t *testing.T) {
	m, recorder := setupAlertMiddleware("https://hooks.slack.test/alert")

	called := false
	wrapped := m.WrapCommandHandler("firstmessage", func(ctx context.Context) error {
		called = true
		return nil
	})
	wrapped(context.Background())
	m.Wait()

	assert.True(t, called)
	assert.Equal(t, 0, recorder.count())
}

func TestSendSlackAlert_PostsToWebhook(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	m := NewErrorAlertMiddleware(SlackAlertConfig{
		WebhookURL:  server.URL,
		Environment: "prod",
		AppName:     "firstmessage",
		LogsURL:     "https://logs.example.com",
	})
	m.sendSlackAlert("search failed", "Command: /firstmessage")

	require.NotNil(t, received)
	assert.Contains(t, received["text"], "[firstmessage] Error Alert")
	assert.NotContains(t, received["text"], "[dev]")
	blocks, ok := received["blocks"].([]any)
	require.True(t, ok)
	assert.Len(t, blocks, 4)
}

func TestHTTPMiddleware_RecoversPanic(t *testing.T) {
	m, recorder := setupAlertMiddleware("https://hooks.slack.test/alert")

	handler := m.HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler exploded")
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() { handler.ServeHTTP(rec, req) })
	m.Wait()

	assert.Equal(t, 1, recorder.count())
}
