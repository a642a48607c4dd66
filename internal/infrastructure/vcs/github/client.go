package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v66/github"
	domainerrors "github.com/satyadev-truss/truss-review/internal/domain/errors"
	"github.com/satyadev-truss/truss-review/internal/domain/ports"
	"github.com/satyadev-truss/truss-review/internal/i18n"
	"golang.org/x/oauth2"
)

var _ ports.VCSClient = (*GitHubClient)(nil)

type PullRequestsService interface {
	GetRaw(ctx context.Context, owner, repo string, number int, opts github.RawOptions) (string, *github.Response, error)
}

type IssuesService interface {
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
}

// GitHubClient implementa ports.VCSClient sobre la API de GitHub.
type GitHubClient struct {
	prService     PullRequestsService
	issuesService IssuesService
	trans         *i18n.Translations
}

// NewGitHubClient crea un cliente autenticado con el token dado.
func NewGitHubClient(token string, trans *i18n.Translations) *GitHubClient {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return &GitHubClient{
		prService:     client.PullRequests,
		issuesService: client.Issues,
		trans:         trans,
	}
}

// NewGitHubClientWithServices permite inyectar los servicios, para tests.
func NewGitHubClientWithServices(
	prService PullRequestsService,
	issuesService IssuesService,
	trans *i18n.Translations,
) *GitHubClient {
	return &GitHubClient{
		prService:     prService,
		issuesService: issuesService,
		trans:         trans,
	}
}

// GetDiff obtiene el diff unificado completo del PR. El texto se trata como
// opaco: el truncado es responsabilidad del pipeline, no del cliente.
func (ghc *GitHubClient) GetDiff(ctx context.Context, owner, repo string, number int) (string, error) {
	diff, resp, err := ghc.prService.GetRaw(ctx, owner, repo, number, github.RawOptions{Type: github.Diff})
	if err != nil {
		// 406: el diff es demasiado grande para el endpoint crudo
		if resp != nil && resp.StatusCode == http.StatusNotAcceptable {
			msg := ghc.trans.GetMessage("warning_pr_too_large", 0, map[string]interface{}{
				"PRNumber": number,
			})
			return "", domainerrors.NewUpstreamError("github", "get_diff: "+msg, err)
		}
		return "", domainerrors.NewUpstreamError("github", "get_diff", err)
	}
	return diff, nil
}

// CreateComment publica el comentario en el PR vía la API de issues.
func (ghc *GitHubClient) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &github.IssueComment{
		Body: github.String(body),
	}

	_, _, err := ghc.issuesService.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		return domainerrors.NewDeliveryError(owner, repo, number, err)
	}
	return nil
}
