package services

import (
	"context"

	"github.com/satyadev-truss/truss-review/internal/config"
	"github.com/satyadev-truss/truss-review/internal/domain/models"
	"github.com/satyadev-truss/truss-review/internal/domain/ports"
	"github.com/satyadev-truss/truss-review/internal/i18n"
	"github.com/satyadev-truss/truss-review/internal/infrastructure/ai"
	"github.com/satyadev-truss/truss-review/internal/logger"
)

// RoastService orquesta el pipeline por evento: guard de idempotencia,
// obtención del diff, lookups de contexto, generación del roast, lookup
// opcional de media, render y publicación del comentario.
//
// Invariante: exactamente un comentario saliente por trigger aceptado (éxito
// o fallback), salvo que la publicación misma falle, en cuyo caso solo se
// loguea. Ningún error cruza el borde del handler.
type RoastService struct {
	cfg      *config.Config
	trans    *i18n.Translations
	vcs      ports.VCSClient
	roaster  ports.RoastGenerator
	media    ports.MediaSearcher
	contexts ports.ContextProvider
	inflight ports.InFlightRegistry
	renderer *CommentRenderer
}

// NewRoastService crea una nueva instancia de RoastService.
func NewRoastService(
	cfg *config.Config,
	trans *i18n.Translations,
	vcs ports.VCSClient,
	roaster ports.RoastGenerator,
	media ports.MediaSearcher,
	contexts ports.ContextProvider,
	inflight ports.InFlightRegistry,
) *RoastService {
	return &RoastService{
		cfg:      cfg,
		trans:    trans,
		vcs:      vcs,
		roaster:  roaster,
		media:    media,
		contexts: contexts,
		inflight: inflight,
		renderer: NewCommentRenderer(trans),
	}
}

// HandlePullRequestEvent procesa un delivery de webhook de punta a punta.
// Nunca retorna error: el dispatcher de eventos siempre observa un retorno
// normal, así la semántica de redelivery del host no se ve afectada por
// fallas internas.
func (s *RoastService) HandlePullRequestEvent(ctx context.Context, event models.PullRequestEvent) {
	ctx = logger.With(ctx,
		"repo", event.RepoSlug(),
		"pr", event.Number,
		"author", event.Author,
	)

	withMedia := false
	switch event.Trigger {
	case models.TriggerLabeled:
		// Solo la etiqueta centinela activa el pipeline extendido; cualquier
		// otra etiqueta es un no-op sin tocar el estado de dedup.
		if event.Label != s.cfg.TriggerLabel {
			logger.Debug(ctx, "etiqueta ignorada", "label", event.Label)
			return
		}
		withMedia = true
	case models.TriggerOpened, models.TriggerSynchronize:
	default:
		logger.Debug(ctx, "trigger ignorado", "trigger", string(event.Trigger))
		return
	}

	if !s.cfg.RepoAllowed(event.RepoSlug()) {
		logger.Debug(ctx, "repositorio fuera de la allowlist")
		return
	}

	key := event.DedupKey()
	if !s.inflight.TryAcquire(key) {
		logger.Info(ctx, "delivery duplicado con procesamiento en vuelo, ignorado", "dedup_key", key)
		return
	}
	// La clave se libera incondicionalmente al final de cada intento: éxito,
	// falla del pipeline o falla del post del fallback.
	defer s.inflight.Release(key)

	body, err := s.buildSuccessBody(ctx, event, withMedia)
	if err != nil {
		logger.Error(ctx, "el pipeline de roast falló, se publica el fallback", err)
		body = s.renderer.RenderFallback(event.Author)
	}

	postCtx, cancel := context.WithTimeout(ctx, s.cfg.GitHubTimeout())
	defer cancel()
	if err := s.vcs.CreateComment(postCtx, event.Owner, event.Repo, event.Number, body); err != nil {
		// Falla terminal: se registra para el operador, sin reintentos.
		logger.Error(ctx, "no se pudo publicar el comentario", err, "dedup_key", key)
		return
	}

	logger.Info(ctx, "comentario publicado", "dedup_key", key)
}

// buildSuccessBody corre las etapas 1 a 6 del pipeline y retorna el cuerpo
// del comentario de éxito. Cualquier error colapsa en el camino de fallback
// del caller.
func (s *RoastService) buildSuccessBody(ctx context.Context, event models.PullRequestEvent, withMedia bool) (string, error) {
	diffCtx, cancel := context.WithTimeout(ctx, s.cfg.GitHubTimeout())
	defer cancel()
	diff, err := s.vcs.GetDiff(diffCtx, event.Owner, event.Repo, event.Number)
	if err != nil {
		return "", err
	}

	req := models.RoastRequest{
		Author: event.Author,
		Stats:  event.Stats,
		Diff:   ai.TruncateDiff(diff, s.cfg.MaxDiffChars),
	}
	if authorContext, ok := s.contexts.AuthorContext(event.Author); ok {
		req.AuthorContext = authorContext
	}
	if styleGuide, ok := s.contexts.StyleGuide(); ok {
		req.StyleGuide = styleGuide
	}

	roastCtx, cancelRoast := context.WithTimeout(ctx, s.cfg.CompletionTimeout())
	defer cancelRoast()
	roast, err := s.roaster.GenerateRoast(roastCtx, req)
	if err != nil {
		return "", err
	}

	var media *models.Media
	var term string
	if withMedia {
		media, term = s.lookupMedia(ctx, roast)
	}

	return s.renderer.RenderSuccess(event.Author, roast, media, term), nil
}

// lookupMedia deriva el término de búsqueda y busca el GIF. Las fallas acá se
// absorben siempre: el enriquecimiento nunca fuerza el comentario de fallback.
func (s *RoastService) lookupMedia(ctx context.Context, roast string) (*models.Media, string) {
	termCtx, cancel := context.WithTimeout(ctx, s.cfg.CompletionTimeout())
	defer cancel()
	term, err := s.roaster.GenerateGifSearchTerm(termCtx, roast)
	if err != nil {
		logger.Warn(ctx, "no se pudo derivar el término de búsqueda, comentario sin imagen", "error", err)
		return nil, ""
	}

	mediaCtx, cancelMedia := context.WithTimeout(ctx, s.cfg.MediaTimeout())
	defer cancelMedia()
	media, ok := s.media.SearchGif(mediaCtx, term)
	if !ok {
		return nil, ""
	}
	return &media, term
}
