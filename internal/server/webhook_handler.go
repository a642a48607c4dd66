package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v66/github"
	"github.com/satyadev-truss/truss-review/internal/domain/models"
	"github.com/satyadev-truss/truss-review/internal/logger"
)

// handleWebhook valida, parsea y despacha un delivery de GitHub. El pipeline
// corre en su propia goroutine: GitHub espera un ack rápido y la generación
// del roast puede tardar más que su timeout de entrega.
func (s *Server) handleWebhook(c *gin.Context) {
	payload, err := github.ValidatePayload(c.Request, s.secret)
	if err != nil {
		logger.Warn(c.Request.Context(), "payload de webhook inválido", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	event, err := github.ParseWebHook(github.WebHookType(c.Request), payload)
	if err != nil {
		logger.Warn(c.Request.Context(), "no se pudo parsear el webhook", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "unparseable event"})
		return
	}

	prEvent, ok := event.(*github.PullRequestEvent)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	normalized, ok := BuildPullRequestEvent(prEvent)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	// El contexto del request muere con el ack; el pipeline usa uno propio.
	go s.handler.HandlePullRequestEvent(context.Background(), normalized)

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// BuildPullRequestEvent normaliza el payload de GitHub al modelo del dominio.
// Retorna ok=false para acciones que el bot no maneja.
func BuildPullRequestEvent(e *github.PullRequestEvent) (models.PullRequestEvent, bool) {
	var trigger models.TriggerKind
	switch e.GetAction() {
	case "opened":
		trigger = models.TriggerOpened
	case "labeled":
		trigger = models.TriggerLabeled
	case "synchronize":
		trigger = models.TriggerSynchronize
	default:
		return models.PullRequestEvent{}, false
	}

	pr := e.GetPullRequest()
	return models.PullRequestEvent{
		Owner:   e.GetRepo().GetOwner().GetLogin(),
		Repo:    e.GetRepo().GetName(),
		Number:  pr.GetNumber(),
		Author:  pr.GetUser().GetLogin(),
		Trigger: trigger,
		Label:   e.GetLabel().GetName(),
		Stats: models.PRStats{
			ChangedFiles: pr.GetChangedFiles(),
			Additions:    pr.GetAdditions(),
			Deletions:    pr.GetDeletions(),
		},
	}, true
}
