// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations, no mock frameworks.
package testdoubles

import (
	"context"

	"github.com/rios0rios0/orgsearch/internal/domain/entities"
	"github.com/rios0rios0/orgsearch/internal/domain/repositories"
)

// ---------------------------------------------------------------------------
// SpyProviderRepository
// ---------------------------------------------------------------------------

// SpyProviderRepository implements repositories.ProviderRepository as a
// configurable spy. Configure the response fields for the methods your test
// exercises, then inspect the call-tracking fields to verify behavior.
type SpyProviderRepository struct {
	// --- identity ---
	ProviderName string

	// --- ListRepositories ---
	Repositories []entities.Repository
	ListErr      error
	// spy: orgs that were requested
	ListedOrgs []string

	// --- CountCodeMatches ---
	MatchCounts map[string]int   // query -> total hit count
	MatchErrs   map[string]error // query -> error to return
	// spy: queries received, in call order
	Queries []string
}

var _ repositories.ProviderRepository = (*SpyProviderRepository)(nil)

func (p *SpyProviderRepository) Name() string { return p.ProviderName }

func (p *SpyProviderRepository) ListRepositories(
	_ context.Context,
	org string,
) ([]entities.Repository, error) {
	p.ListedOrgs = append(p.ListedOrgs, org)
	return p.Repositories, p.ListErr
}

func (p *SpyProviderRepository) CountCodeMatches(
	_ context.Context,
	query string,
) (int, error) {
	p.Queries = append(p.Queries, query)
	if err, ok := p.MatchErrs[query]; ok {
		return 0, err
	}
	return p.MatchCounts[query], nil
}

// ---------------------------------------------------------------------------
// FakePacer
// ---------------------------------------------------------------------------

// FakePacer implements entities.Pacer without any real waiting, counting
// the calls it receives.
type FakePacer struct {
	PaceCalls     int
	CooldownCalls int
	PaceErr       error
}

var _ entities.Pacer = (*FakePacer)(nil)

func (p *FakePacer) Pace(ctx context.Context) error {
	p.PaceCalls++
	if p.PaceErr != nil {
		return p.PaceErr
	}
	return ctx.Err()
}

func (p *FakePacer) Cooldown(ctx context.Context) error {
	p.CooldownCalls++
	return ctx.Err()
}
