package ports

import (
	"context"

	"github.com/satyadev-truss/truss-review/internal/domain/models"
)

// MediaSearcher define la búsqueda de una imagen animada por palabra clave.
// La operación es fail-open: nunca propaga errores del proveedor, una imagen
// faltante jamás debe bloquear la publicación del comentario.
type MediaSearcher interface {
	// SearchGif retorna a lo sumo un resultado. ok es false cuando no hay
	// resultados o cuando el proveedor falló (el error solo se loguea).
	SearchGif(ctx context.Context, term string) (media models.Media, ok bool)
}
