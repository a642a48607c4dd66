package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/satyadev-truss/truss-review/internal/config"
	"github.com/satyadev-truss/truss-review/internal/domain/models"
	"github.com/satyadev-truss/truss-review/internal/i18n"
	"github.com/satyadev-truss/truss-review/internal/logger"
)

// PullRequestHandler es el consumidor de eventos normalizados. Su contrato:
// nunca retorna error ni panic, siempre observa un retorno normal.
type PullRequestHandler interface {
	HandlePullRequestEvent(ctx context.Context, event models.PullRequestEvent)
}

// Server expone el endpoint de webhooks y el health check.
type Server struct {
	engine  *gin.Engine
	handler PullRequestHandler
	secret  []byte
	addr    string
	trans   *i18n.Translations
}

// New crea el servidor con sus rutas configuradas.
func New(cfg *config.Config, handler PullRequestHandler, trans *i18n.Translations) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	var secret []byte
	if cfg.WebhookSecret != "" {
		secret = []byte(cfg.WebhookSecret)
	}

	s := &Server{
		engine:  engine,
		handler: handler,
		secret:  secret,
		addr:    fmt.Sprintf(":%d", cfg.Port),
		trans:   trans,
	}

	engine.POST("/webhook", s.handleWebhook)
	engine.GET("/healthz", s.handleHealth)

	return s
}

// Engine expone el router, para tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run levanta el servidor y lo apaga con gracia cuando el contexto se cancela.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, s.trans.GetMessage("server_starting", 0, map[string]interface{}{
			"Addr": s.addr,
		}))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(ctx, s.trans.GetMessage("server_shutting_down", 0, nil))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
