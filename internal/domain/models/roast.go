package models

import "fmt"

// TriggerKind identifica la acción del evento de pull request que disparó el bot.
type TriggerKind string

const (
	TriggerOpened      TriggerKind = "opened"
	TriggerLabeled     TriggerKind = "labeled"
	TriggerSynchronize TriggerKind = "synchronize"
)

// PullRequestEvent es la vista normalizada de un delivery de webhook de pull request.
// Se construye una vez por delivery y se consume una sola vez en el pipeline.
type PullRequestEvent struct {
	Owner   string
	Repo    string
	Number  int
	Author  string
	Trigger TriggerKind
	// Label es el nombre de la etiqueta aplicada, solo presente cuando Trigger es "labeled".
	Label string
	Stats PRStats
}

// DedupKey retorna la identidad compuesta del PR usada para suprimir
// procesamiento duplicado en vuelo: "{owner}/{repo}#{number}".
func (e PullRequestEvent) DedupKey() string {
	return fmt.Sprintf("%s/%s#%d", e.Owner, e.Repo, e.Number)
}

// RepoSlug retorna "owner/repo" para logs y allowlist.
func (e PullRequestEvent) RepoSlug() string {
	return fmt.Sprintf("%s/%s", e.Owner, e.Repo)
}

// PRStats es el snapshot inmutable de las estadísticas del PR, leído
// directamente del payload del evento.
type PRStats struct {
	ChangedFiles int
	Additions    int
	Deletions    int
}

// RoastRequest agrupa todo lo que necesita el modelo para generar un roast.
// AuthorContext y StyleGuide son aumentos opcionales: su ausencia (string vacío)
// nunca impide la generación.
type RoastRequest struct {
	Author        string
	Stats         PRStats
	Diff          string
	AuthorContext string
	StyleGuide    string
}

// Media es un resultado de búsqueda de imagen. La ausencia de media es un
// estado terminal válido, no un error.
type Media struct {
	ID    string
	Title string
	URL   string
}
