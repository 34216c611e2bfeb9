package repositories

import (
	"context"
	"errors"

	"github.com/rios0rios0/orgsearch/internal/domain/entities"
)

// ErrRateLimited reports that the platform refused a search because of rate
// limiting or a forbidden response. The caller is expected to cool down and
// treat the query as "not found".
var ErrRateLimited = errors.New("search rate limited")

// ErrUnsearchable reports that the platform could not process the search
// query for this repository, typically because the repository is empty or
// not indexed.
var ErrUnsearchable = errors.New("repository not searchable")

// RepositoryLister enumerates the repositories of one organization on a
// code hosting platform.
type RepositoryLister interface {
	// Name returns the provider identifier (e.g. "github").
	Name() string

	// ListRepositories lists all repositories visible to the authenticated
	// principal within the organization.
	ListRepositories(ctx context.Context, org string) ([]entities.Repository, error)
}

// CodeSearcher answers full-text code-search queries against the platform's
// search index.
type CodeSearcher interface {
	// CountCodeMatches returns the total number of hits for the given
	// search query. Failures are classified with ErrRateLimited and
	// ErrUnsearchable where the platform response allows it.
	CountCodeMatches(ctx context.Context, query string) (int, error)
}

// ProviderRepository combines the two capabilities a code hosting platform
// must offer for an organization-wide search.
type ProviderRepository interface {
	RepositoryLister
	CodeSearcher
}
