package ports

import (
	"context"

	"github.com/satyadev-truss/truss-review/internal/domain/models"
)

// RoastGenerator define la interfaz para el proveedor de IA que genera roasts.
type RoastGenerator interface {
	// GenerateRoast genera el texto del roast a partir del contenido del PR.
	GenerateRoast(ctx context.Context, req models.RoastRequest) (string, error)
	// GenerateGifSearchTerm deriva una frase corta (1 a 3 palabras) que captura
	// el tono del roast, usable como query de búsqueda de imágenes.
	GenerateGifSearchTerm(ctx context.Context, roast string) (string, error)
}
