package ports

import "context"

// VCSClient define los métodos para interactuar con la API del sistema de
// control de versiones que hospeda los pull requests.
type VCSClient interface {
	// GetDiff obtiene el diff unificado completo del PR.
	GetDiff(ctx context.Context, owner, repo string, number int) (string, error)
	// CreateComment publica un comentario en el PR (vía la API de issues).
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
}
