package entities

import (
	"strings"
)

const (
	extensionQualifier = " -extension:"
	pathQualifier      = " -path:"
)

// BuildIgnoreClause turns a list of ignore patterns into the exclusion
// suffix of a code-search query. Patterns are classified one by one,
// first rule wins:
//
//  1. Empty or whitespace-only patterns are skipped.
//  2. Patterns starting with "*." or "." are extension exclusions; all
//     leading '*' and '.' characters are stripped.
//  3. Patterns with no '.' anywhere that do not start with "/" are treated
//     as bare extensions.
//  4. Everything else is a path exclusion.
//
// Clauses are emitted space-prefixed, in input order, without deduplication.
// Note that rule 2 classifies dot-directories such as ".circleci" as
// extension exclusions; that ambiguity is kept as observable behaviour.
func BuildIgnoreClause(patterns []string) string {
	var clause strings.Builder
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		switch {
		case strings.HasPrefix(pattern, "*.") || strings.HasPrefix(pattern, "."):
			clause.WriteString(extensionQualifier + strings.TrimLeft(pattern, "*."))
		case !strings.Contains(pattern, ".") && !strings.HasPrefix(pattern, "/"):
			clause.WriteString(extensionQualifier + pattern)
		default:
			clause.WriteString(pathQualifier + pattern)
		}
	}
	return clause.String()
}

// BuildSearchQuery assembles the full code-search query for one term in one
// repository: the term double-quoted for exact-phrase matching, a repo:
// scope, and the ignore clause. Embedded double quotes in the term are not
// escaped; that is the caller's responsibility.
func BuildSearchQuery(term, repoFullName string, ignorePatterns []string) string {
	return `"` + term + `" repo:` + repoFullName + BuildIgnoreClause(ignorePatterns)
}
