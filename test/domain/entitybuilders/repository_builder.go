package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/orgsearch/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// RepositoryBuilder helps create test repositories with a fluent interface.
type RepositoryBuilder struct {
	*testkit.BaseBuilder
	name     string
	fullName string
	htmlURL  string
}

// NewRepositoryBuilder creates a new repository builder with sensible defaults.
func NewRepositoryBuilder() *RepositoryBuilder {
	return &RepositoryBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "test-repo",
		fullName:    "test-org/test-repo",
		htmlURL:     "https://github.com/test-org/test-repo",
	}
}

// WithName sets the short repository name.
func (b *RepositoryBuilder) WithName(name string) *RepositoryBuilder {
	b.name = name
	return b
}

// WithFullName sets the "org/name" full name.
func (b *RepositoryBuilder) WithFullName(fullName string) *RepositoryBuilder {
	b.fullName = fullName
	return b
}

// WithHTMLURL sets the repository web URL.
func (b *RepositoryBuilder) WithHTMLURL(htmlURL string) *RepositoryBuilder {
	b.htmlURL = htmlURL
	return b
}

// Build creates the repository (satisfies testkit.Builder interface).
func (b *RepositoryBuilder) Build() interface{} {
	return b.BuildRepository()
}

// BuildRepository creates the repository with a concrete return type.
func (b *RepositoryBuilder) BuildRepository() entities.Repository {
	return entities.Repository{
		Name:     b.name,
		FullName: b.fullName,
		HTMLURL:  b.htmlURL,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *RepositoryBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "test-repo"
	b.fullName = "test-org/test-repo"
	b.htmlURL = "https://github.com/test-org/test-repo"
	return b
}

// Clone creates a deep copy of the RepositoryBuilder.
func (b *RepositoryBuilder) Clone() testkit.Builder {
	return &RepositoryBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		fullName:    b.fullName,
		htmlURL:     b.htmlURL,
	}
}
