package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/orgsearch/internal/domain/entities"
	"github.com/rios0rios0/orgsearch/internal/domain/repositories"
)

const (
	providerName = "github"
	perPage      = 100
)

// ProviderRepository implements repositories.ProviderRepository for GitHub.
type ProviderRepository struct {
	client *gh.Client
}

var _ repositories.ProviderRepository = (*ProviderRepository)(nil)

// NewProviderRepository creates a new GitHub provider with the given token.
func NewProviderRepository(token string) repositories.ProviderRepository {
	return &ProviderRepository{
		client: gh.NewClient(nil).WithAuthToken(token),
	}
}

func (p *ProviderRepository) Name() string { return providerName }

// ListRepositories lists all repositories in a GitHub organization.
func (p *ProviderRepository) ListRepositories(
	ctx context.Context,
	org string,
) ([]entities.Repository, error) {
	var allRepos []entities.Repository
	opts := &gh.RepositoryListByOrgOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	for {
		repos, resp, err := p.client.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories for %q: %w", org, err)
		}

		for _, r := range repos {
			allRepos = append(allRepos, entities.Repository{
				Name:     r.GetName(),
				FullName: r.GetFullName(),
				HTMLURL:  r.GetHTMLURL(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

// CountCodeMatches runs one code-search query and returns the total hit
// count. Only the count matters, so a single result per page is requested.
func (p *ProviderRepository) CountCodeMatches(
	ctx context.Context,
	query string,
) (int, error) {
	result, _, err := p.client.Search.Code(ctx, query, &gh.SearchOptions{
		ListOptions: gh.ListOptions{PerPage: 1},
	})
	if err != nil {
		return 0, classifySearchError(err)
	}

	return result.GetTotal(), nil
}

// classifySearchError maps go-github error types onto the domain's search
// failure taxonomy: rate limiting (primary, secondary, or a plain 403) and
// unprocessable queries (422, e.g. an empty repository).
func classifySearchError(err error) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%w: %v", repositories.ErrRateLimited, err)
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: %v", repositories.ErrRateLimited, err)
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusForbidden:
			return fmt.Errorf("%w: %v", repositories.ErrRateLimited, err)
		case http.StatusUnprocessableEntity:
			return fmt.Errorf("%w: %v", repositories.ErrUnsearchable, err)
		}
	}

	return err
}
