package ai

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/satyadev-truss/truss-review/internal/domain/models"
)

// Templates del system prompt para el roast
const (
	roastSystemPromptEN = `You are a sarcastic but ultimately constructive senior code reviewer.
Roast the pull request you are given: be witty, be merciless about the code, never be cruel about the person.
Sneak in at least one genuinely useful observation.
Keep the whole roast under 120 words. Markdown is fine, walls of text are not.`

	roastSystemPromptES = `Sos un revisor de código senior sarcástico pero en el fondo constructivo.
Rostizá el pull request que te pasan: sé ingenioso, sé despiadado con el código, nunca cruel con la persona.
Meté al menos una observación genuinamente útil.
Mantené el roast completo en menos de 120 palabras. Markdown está bien, los ladrillos de texto no.`
)

// Templates del prompt para derivar el término de búsqueda del GIF
const (
	gifTermPromptEN = `Given the following code roast, reply with a short visual search phrase (1 to 3 words)
that captures its tone, suitable for searching a reaction GIF.
Reply with the phrase only, no punctuation, no explanation.

Roast:
%s`

	gifTermPromptES = `Dado el siguiente roast de código, respondé con una frase visual corta (1 a 3 palabras)
que capture su tono, apta para buscar un GIF de reacción.
Respondé solo con la frase, sin puntuación ni explicación.

Roast:
%s`
)

// GetRoastSystemPrompt retorna la instrucción de sistema según el idioma.
// El presupuesto de palabras es advisory para el modelo, no se valida acá.
func GetRoastSystemPrompt(locale string) string {
	if locale == "es" {
		return roastSystemPromptES
	}
	return roastSystemPromptEN
}

// GetGifTermPrompt retorna el prompt para derivar el término de búsqueda.
func GetGifTermPrompt(locale, roast string) string {
	if locale == "es" {
		return fmt.Sprintf(gifTermPromptES, roast)
	}
	return fmt.Sprintf(gifTermPromptEN, roast)
}

// BuildRoastUserMessage arma el mensaje de usuario: bloque de stats, bloque
// opcional de contexto del autor, bloque opcional de guía de estilo y el diff
// en un bloque cercado, en ese orden fijo. Cada bloque opcional está presente
// completo o ausente por completo.
func BuildRoastUserMessage(req models.RoastRequest) string {
	var b strings.Builder

	b.WriteString("PR stats:\n")
	b.WriteString(fmt.Sprintf("%d files changed, %d additions, %d deletions\n",
		req.Stats.ChangedFiles, req.Stats.Additions, req.Stats.Deletions))

	if req.AuthorContext != "" {
		b.WriteString("\nAbout the author (")
		b.WriteString(req.Author)
		b.WriteString("):\n")
		b.WriteString(req.AuthorContext)
		b.WriteString("\n")
	}

	if req.StyleGuide != "" {
		b.WriteString("\nTeam style guide:\n")
		b.WriteString(req.StyleGuide)
		b.WriteString("\n")
	}

	b.WriteString("\nDiff:\n```diff\n")
	b.WriteString(req.Diff)
	b.WriteString("\n```")

	return b.String()
}

// TruncateDiff acota el diff al presupuesto de caracteres, agregando una nota
// de truncado para que el modelo sepa que ve un diff parcial. max <= 0
// deshabilita el truncado. El corte nunca cae en el medio de una runa: un
// diff truncado sigue siendo UTF-8 válido.
func TruncateDiff(diff string, max int) string {
	if max <= 0 || len(diff) <= max {
		return diff
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(diff[cut]) {
		cut--
	}
	return diff[:cut] + "\n... [diff truncated]"
}
