package gemini

import (
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// formatResponse formatea la respuesta de la API de Gemini en una cadena.
func formatResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var formattedContent strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					formattedContent.WriteString(string(text))
				}
			}
		}
	}
	return formattedContent.String()
}
