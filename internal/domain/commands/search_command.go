package commands

import (
	"context"
	"errors"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/orgsearch/config"
	"github.com/rios0rios0/orgsearch/internal/domain/entities"
	"github.com/rios0rios0/orgsearch/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/orgsearch/internal/infrastructure/repositories"
)

// Search is the interface for the search command.
type Search interface {
	Execute(ctx context.Context, settings *config.Config, opts SearchOptions) (entities.Report, error)
}

// SearchOptions holds runtime options for a single search run.
type SearchOptions struct {
	Organization string   // Organization whose repositories are surveyed
	Token        string   // Resolved auth token for the provider
	Terms        []string // Literal strings to search for
	Ignore       []string // Ignore patterns (extensions or paths)
	Verbose      bool
}

// SearchCommand orchestrates the full survey: enumerate the organization's
// repositories, then ask the platform's search index once per repository
// per term, pacing every call to stay under the shared rate limit.
//
// The loop is strictly sequential with one query in flight at a time. No
// failure inside it aborts the run; every failure mode degrades to "not
// found" so a single flaky repository cannot suppress results for the rest
// of the organization.
type SearchCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
	newPacer         func(interval, cooldown time.Duration) entities.Pacer
}

// NewSearchCommand creates a new SearchCommand with the given provider registry.
func NewSearchCommand(providerRegistry *infraRepos.ProviderRegistry) *SearchCommand {
	return &SearchCommand{
		providerRegistry: providerRegistry,
		newPacer: func(interval, cooldown time.Duration) entities.Pacer {
			return entities.NewIntervalPacer(interval, cooldown)
		},
	}
}

// Execute runs the survey and returns the sparse repository-to-terms report.
// A failed enumeration yields an empty report, not an error; the only error
// returned is a cancelled context, alongside the partial report gathered so
// far.
func (it *SearchCommand) Execute(
	ctx context.Context,
	settings *config.Config,
	opts SearchOptions,
) (entities.Report, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	provider, err := it.providerRegistry.Get(settings.Provider, opts.Token)
	if err != nil {
		return nil, err
	}

	pacer := it.newPacer(settings.Search.Interval(), settings.Search.Cooldown())

	logger.Infof("Discovering repositories in %q...", opts.Organization)

	repos, listErr := provider.ListRepositories(ctx, opts.Organization)
	if listErr != nil {
		logger.Errorf("Failed to list repositories in %q: %v", opts.Organization, listErr)
		return entities.Report{}, nil
	}

	logger.Infof("Found %d repositories in %q", len(repos), opts.Organization)

	report := entities.Report{}
	for i, repo := range repos {
		logger.Infof("Searching repository %d/%d: %s", i+1, len(repos), repo.Name)

		found := 0
		for _, term := range opts.Terms {
			logger.Debugf("  Searching for %q", term)

			if it.termMatches(ctx, provider, pacer, repo, term, opts.Ignore) {
				report.Add(repo.HTMLURL, term)
				found++
				logger.Infof("  Found %q in %s", term, repo.Name)
			}

			// Paced regardless of outcome, one token per search call.
			if paceErr := pacer.Pace(ctx); paceErr != nil {
				return report, paceErr
			}
		}

		logger.Infof("Completed %s: found %d of %d strings", repo.Name, found, len(opts.Terms))
	}

	return report, nil
}

// termMatches asks the platform whether term has at least one hit in repo.
// Rate limiting triggers the cooldown pause; every failure is logged and
// reported as a non-match.
func (it *SearchCommand) termMatches(
	ctx context.Context,
	searcher repositories.CodeSearcher,
	pacer entities.Pacer,
	repo entities.Repository,
	term string,
	ignore []string,
) bool {
	query := entities.BuildSearchQuery(term, repo.FullName, ignore)

	count, err := searcher.CountCodeMatches(ctx, query)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrRateLimited):
			logger.Warnf("Rate limit exceeded or search not available for %s, cooling down", repo.Name)
			// A cancelled cooldown surfaces through the pace call that follows.
			_ = pacer.Cooldown(ctx)
		case errors.Is(err, repositories.ErrUnsearchable):
			logger.Debugf("Search not available for repository %s", repo.Name)
		default:
			logger.Errorf("Error searching in %s: %v", repo.Name, err)
		}
		return false
	}

	return count > 0
}
