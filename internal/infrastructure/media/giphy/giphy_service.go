package giphy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/satyadev-truss/truss-review/internal/domain/models"
	"github.com/satyadev-truss/truss-review/internal/domain/ports"
	"github.com/satyadev-truss/truss-review/internal/infrastructure/httpclient"
	"github.com/satyadev-truss/truss-review/internal/logger"
)

var _ ports.MediaSearcher = (*GiphyService)(nil)

const (
	defaultBaseURL = "https://api.giphy.com/v1/gifs/search"
	searchLimit    = "1"
	searchRating   = "pg"
)

// GiphyService implementa ports.MediaSearcher contra la API de búsqueda de
// Giphy. Toda falla del proveedor colapsa a "sin imagen": el enriquecimiento
// es decorativo, nunca bloquea la entrega del comentario.
type GiphyService struct {
	apiKey     string
	baseURL    string
	httpClient httpclient.HTTPClient
}

// NewGiphyService crea una nueva instancia de GiphyService.
func NewGiphyService(apiKey string, httpClient httpclient.HTTPClient) *GiphyService {
	return &GiphyService{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
	}
}

// NewGiphyServiceWithBaseURL permite apuntar a otro endpoint, para tests.
func NewGiphyServiceWithBaseURL(apiKey, baseURL string, httpClient httpclient.HTTPClient) *GiphyService {
	return &GiphyService{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type searchResponse struct {
	Data []struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Images struct {
			Original struct {
				URL string `json:"url"`
			} `json:"original"`
		} `json:"images"`
	} `json:"data"`
}

// SearchGif busca un GIF por palabra clave con límite 1 y rating fijo.
// Retorna ok=false ante cualquier error del proveedor o resultado vacío; los
// errores solo se loguean.
func (s *GiphyService) SearchGif(ctx context.Context, term string) (models.Media, bool) {
	query := url.Values{}
	query.Set("api_key", s.apiKey)
	query.Set("q", term)
	query.Set("limit", searchLimit)
	query.Set("rating", searchRating)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		logger.Warn(ctx, "no se pudo construir el request a giphy", "error", err)
		return models.Media{}, false
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Warn(ctx, "fallo la búsqueda en giphy", "term", term, "error", err)
		return models.Media{}, false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		logger.Warn(ctx, "giphy respondió con status inesperado", "term", term, "status", resp.StatusCode)
		return models.Media{}, false
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		logger.Warn(ctx, "no se pudo decodificar la respuesta de giphy", "term", term, "error", err)
		return models.Media{}, false
	}

	if len(parsed.Data) == 0 || parsed.Data[0].Images.Original.URL == "" {
		logger.Debug(ctx, "giphy no encontró resultados", "term", term)
		return models.Media{}, false
	}

	first := parsed.Data[0]
	return models.Media{
		ID:    first.ID,
		Title: first.Title,
		URL:   first.Images.Original.URL,
	}, true
}

// String implementa fmt.Stringer sin exponer la API key.
func (s *GiphyService) String() string {
	return fmt.Sprintf("GiphyService{baseURL: %s}", s.baseURL)
}
