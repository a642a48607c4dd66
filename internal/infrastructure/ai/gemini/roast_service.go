package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/satyadev-truss/truss-review/internal/config"
	domainerrors "github.com/satyadev-truss/truss-review/internal/domain/errors"
	"github.com/satyadev-truss/truss-review/internal/domain/models"
	"github.com/satyadev-truss/truss-review/internal/domain/ports"
	"github.com/satyadev-truss/truss-review/internal/i18n"
	"github.com/satyadev-truss/truss-review/internal/infrastructure/ai"
	"google.golang.org/api/option"
)

var _ ports.RoastGenerator = (*GeminiRoaster)(nil)

const (
	roastTemperature     = 0.8
	roastMaxOutputTokens = 1024
	termTemperature      = 0.4
	termMaxOutputTokens  = 16
)

// GeminiRoaster genera roasts y términos de búsqueda de GIFs usando Gemini.
type GeminiRoaster struct {
	client     *genai.Client
	roastModel *genai.GenerativeModel
	termModel  *genai.GenerativeModel
	config     *config.Config
	trans      *i18n.Translations
}

// NewGeminiRoaster crea una nueva instancia de GeminiRoaster.
func NewGeminiRoaster(ctx context.Context, cfg *config.Config, trans *i18n.Translations) (*GeminiRoaster, error) {
	if cfg.GeminiAPIKey == "" {
		msg := trans.GetMessage("error_missing_api_key", 0, nil)
		return nil, fmt.Errorf("%s", msg)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	roastModel := client.GenerativeModel(cfg.Model)
	roastModel.SetTemperature(roastTemperature)
	roastModel.SetMaxOutputTokens(roastMaxOutputTokens)
	roastModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(ai.GetRoastSystemPrompt(cfg.Language))},
	}

	termModel := client.GenerativeModel(cfg.Model)
	termModel.SetTemperature(termTemperature)
	termModel.SetMaxOutputTokens(termMaxOutputTokens)

	return &GeminiRoaster{
		client:     client,
		roastModel: roastModel,
		termModel:  termModel,
		config:     cfg,
		trans:      trans,
	}, nil
}

// GenerateRoast genera el texto del roast a partir del contenido del PR.
// El diff ya viene truncado por el pipeline; acá se incluye tal cual.
func (g *GeminiRoaster) GenerateRoast(ctx context.Context, req models.RoastRequest) (string, error) {
	prompt := ai.BuildRoastUserMessage(req)

	resp, err := g.roastModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", domainerrors.NewUpstreamError("gemini", "generate_roast", err)
	}

	roast := strings.TrimSpace(formatResponse(resp))
	if roast == "" {
		msg := g.trans.GetMessage("error_empty_roast", 0, nil)
		return "", domainerrors.NewUpstreamError("gemini", "generate_roast", fmt.Errorf("%s", msg))
	}

	return roast, nil
}

// GenerateGifSearchTerm deriva una frase corta de búsqueda a partir del roast.
func (g *GeminiRoaster) GenerateGifSearchTerm(ctx context.Context, roast string) (string, error) {
	prompt := ai.GetGifTermPrompt(g.config.Language, roast)

	resp, err := g.termModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", domainerrors.NewUpstreamError("gemini", "generate_gif_search_term", err)
	}

	term := strings.TrimSpace(formatResponse(resp))
	if term == "" {
		msg := g.trans.GetMessage("error_empty_search_term", 0, nil)
		return "", domainerrors.NewUpstreamError("gemini", "generate_gif_search_term", fmt.Errorf("%s", msg))
	}

	return term, nil
}

// Close libera el cliente subyacente de Gemini.
func (g *GeminiRoaster) Close() error {
	return g.client.Close()
}
