package server

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-github/v66/github"
	"github.com/satyadev-truss/truss-review/internal/config"
	"github.com/satyadev-truss/truss-review/internal/domain/models"
	"github.com/satyadev-truss/truss-review/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	events chan models.PullRequestEvent
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{events: make(chan models.PullRequestEvent, 8)}
}

func (h *recordingHandler) HandlePullRequestEvent(_ context.Context, event models.PullRequestEvent) {
	h.events <- event
}

func (h *recordingHandler) waitForEvent(t *testing.T) models.PullRequestEvent {
	t.Helper()
	select {
	case event := <-h.events:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("el handler no recibió ningún evento")
		return models.PullRequestEvent{}
	}
}

func newTestServer(t *testing.T, secret string) (*Server, *recordingHandler) {
	t.Helper()
	trans, err := i18n.NewTranslations("en", t.TempDir())
	require.NoError(t, err)

	handler := newRecordingHandler()
	cfg := &config.Config{Port: 8080, WebhookSecret: secret}
	return New(cfg, handler, trans), handler
}

const openedPayload = `{
	"action": "opened",
	"number": 7,
	"pull_request": {
		"number": 7,
		"user": {"login": "alice"},
		"changed_files": 3,
		"additions": 10,
		"deletions": 2
	},
	"repository": {
		"name": "roaster",
		"owner": {"login": "truss"}
	}
}`

const labeledPayload = `{
	"action": "labeled",
	"number": 7,
	"label": {"name": "truss-review"},
	"pull_request": {
		"number": 7,
		"user": {"login": "alice"},
		"changed_files": 1,
		"additions": 2,
		"deletions": 0
	},
	"repository": {
		"name": "roaster",
		"owner": {"login": "truss"}
	}
}`

func postWebhook(server *Server, eventType, payload string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", eventType)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	recorder := httptest.NewRecorder()
	server.Engine().ServeHTTP(recorder, req)
	return recorder
}

func TestHandleWebhook(t *testing.T) {
	t.Run("Should accept and dispatch an opened pull request", func(t *testing.T) {
		server, handler := newTestServer(t, "")

		recorder := postWebhook(server, "pull_request", openedPayload, nil)

		assert.Equal(t, http.StatusAccepted, recorder.Code)
		event := handler.waitForEvent(t)
		assert.Equal(t, "truss", event.Owner)
		assert.Equal(t, "roaster", event.Repo)
		assert.Equal(t, 7, event.Number)
		assert.Equal(t, "alice", event.Author)
		assert.Equal(t, models.TriggerOpened, event.Trigger)
		assert.Equal(t, models.PRStats{ChangedFiles: 3, Additions: 10, Deletions: 2}, event.Stats)
	})

	t.Run("Should carry the label name on labeled events", func(t *testing.T) {
		server, handler := newTestServer(t, "")

		recorder := postWebhook(server, "pull_request", labeledPayload, nil)

		assert.Equal(t, http.StatusAccepted, recorder.Code)
		event := handler.waitForEvent(t)
		assert.Equal(t, models.TriggerLabeled, event.Trigger)
		assert.Equal(t, "truss-review", event.Label)
	})

	t.Run("Should ignore unsupported actions", func(t *testing.T) {
		server, handler := newTestServer(t, "")
		payload := `{"action": "closed", "pull_request": {"number": 7}, "repository": {"name": "r", "owner": {"login": "o"}}}`

		recorder := postWebhook(server, "pull_request", payload, nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, handler.events)
	})

	t.Run("Should ignore non pull request events", func(t *testing.T) {
		server, handler := newTestServer(t, "")

		recorder := postWebhook(server, "ping", `{"zen": "keep it logically awesome"}`, nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, handler.events)
	})

	t.Run("Should reject a bad signature when a secret is configured", func(t *testing.T) {
		server, handler := newTestServer(t, "hmac-secret")

		recorder := postWebhook(server, "pull_request", openedPayload, map[string]string{
			"X-Hub-Signature-256": "sha256=deadbeef",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Empty(t, handler.events)
	})

	t.Run("Should accept a correctly signed payload", func(t *testing.T) {
		secret := "hmac-secret"
		server, handler := newTestServer(t, secret)

		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte(openedPayload))
		signature := "sha256=" + hex.EncodeToString(mac.Sum(nil))

		recorder := postWebhook(server, "pull_request", openedPayload, map[string]string{
			"X-Hub-Signature-256": signature,
		})

		assert.Equal(t, http.StatusAccepted, recorder.Code)
		handler.waitForEvent(t)
	})
}

func TestHandleHealth(t *testing.T) {
	server, _ := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	recorder := httptest.NewRecorder()
	server.Engine().ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestBuildPullRequestEvent(t *testing.T) {
	t.Run("Should map supported actions", func(t *testing.T) {
		for action, trigger := range map[string]models.TriggerKind{
			"opened":      models.TriggerOpened,
			"labeled":     models.TriggerLabeled,
			"synchronize": models.TriggerSynchronize,
		} {
			event, ok := BuildPullRequestEvent(&github.PullRequestEvent{
				Action: github.String(action),
				Repo: &github.Repository{
					Name:  github.String("roaster"),
					Owner: &github.User{Login: github.String("truss")},
				},
				PullRequest: &github.PullRequest{
					Number: github.Int(7),
					User:   &github.User{Login: github.String("alice")},
				},
			})

			require.True(t, ok, "action %s", action)
			assert.Equal(t, trigger, event.Trigger)
			assert.Equal(t, "truss/roaster#7", event.DedupKey())
		}
	})

	t.Run("Should reject unsupported actions", func(t *testing.T) {
		_, ok := BuildPullRequestEvent(&github.PullRequestEvent{
			Action: github.String("review_requested"),
		})
		assert.False(t, ok)
	})
}
