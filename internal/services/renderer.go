package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/satyadev-truss/truss-review/internal/domain/models"
	"github.com/satyadev-truss/truss-review/internal/i18n"
)

// CommentRenderer arma los cuerpos de comentario que el bot publica en el PR.
// Es puro y sin estado: toda la variabilidad viene por parámetros.
type CommentRenderer struct {
	trans *i18n.Translations
}

// NewCommentRenderer crea una nueva instancia de CommentRenderer.
func NewCommentRenderer(trans *i18n.Translations) *CommentRenderer {
	return &CommentRenderer{trans: trans}
}

// RenderSuccess arma el comentario de éxito: saludo, línea en blanco y el
// roast. Con media presente agrega la línea de hashtag y la imagen embebida.
func (r *CommentRenderer) RenderSuccess(author, roast string, media *models.Media, term string) string {
	greeting := r.trans.GetMessage("comment_greeting", 0, map[string]interface{}{
		"Author": author,
	})

	var b strings.Builder
	b.WriteString(greeting)
	b.WriteString("\n\n")
	b.WriteString(roast)

	if media != nil {
		b.WriteString("\n\n")
		b.WriteString(Hashtag(term))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("![%s](%s)", term, media.URL))
	}

	return b.String()
}

// RenderFallback arma el comentario fijo de falla, independiente de cualquier
// estado del pipeline salvo el autor a saludar.
func (r *CommentRenderer) RenderFallback(author string) string {
	return r.trans.GetMessage("comment_fallback", 0, map[string]interface{}{
		"Author": author,
	})
}

// Hashtag convierte el término de búsqueda en un hashtag: descarta todo lo
// que no sea alfanumérico y pasa a minúsculas.
func Hashtag(term string) string {
	var b strings.Builder
	b.WriteString("#")
	for _, r := range term {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
