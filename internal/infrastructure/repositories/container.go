package repositories

import (
	ghRepo "github.com/rios0rios0/orgsearch/internal/infrastructure/repositories/github"
	"go.uber.org/dig"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register provider registry with all provider factories
	return container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register("github", ghRepo.NewProviderRepository)
		return reg
	})
}
