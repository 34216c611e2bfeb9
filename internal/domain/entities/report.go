package entities

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

const headingWidth = 80

// StringSet is a set of search terms.
type StringSet map[string]struct{}

// Report maps a repository HTML URL to the set of search terms found in it.
// The mapping is sparse: a repository appears only if at least one term
// matched, so an entry is never empty.
type Report map[string]StringSet

// Add records that term was found in the repository identified by repoURL.
func (r Report) Add(repoURL, term string) {
	set, ok := r[repoURL]
	if !ok {
		set = StringSet{}
		r[repoURL] = set
	}
	set[term] = struct{}{}
}

// Matches returns the terms found in the given repository, sorted
// alphabetically. The result is empty for repositories without matches.
func (r Report) Matches(repoURL string) []string {
	set := r[repoURL]
	terms := make([]string, 0, len(set))
	for term := range set {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Repositories returns the repository URLs present in the report, sorted
// for deterministic output.
func (r Report) Repositories() []string {
	urls := make([]string, 0, len(r))
	for url := range r {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}

// Tally counts, for each term, in how many repositories it was found.
// It is an independent pass over the report, not state retained from the
// search phase.
func (r Report) Tally() map[string]int {
	counts := map[string]int{}
	for _, set := range r {
		for term := range set {
			counts[term]++
		}
	}
	return counts
}

// WriteResults renders the per-repository listing of matched terms with a
// trailing total count.
func WriteResults(w io.Writer, report Report) {
	if len(report) == 0 {
		fmt.Fprintln(w, "No repositories found containing the specified strings.")
		return
	}

	heading(w, "SEARCH RESULTS")
	for _, url := range report.Repositories() {
		fmt.Fprintf(w, "\nRepository: %s\n", url)
		fmt.Fprintf(w, "Found strings: %s\n", strings.Join(report.Matches(url), ", "))
	}
	fmt.Fprintf(w, "\nTotal repositories with matches: %d\n", len(report))
}

// WriteSummary renders the per-term tally across all repositories.
// Nothing is written for an empty report.
func WriteSummary(w io.Writer, report Report) {
	if len(report) == 0 {
		return
	}

	counts := report.Tally()
	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	heading(w, "SUMMARY BY STRING")
	for _, term := range terms {
		noun := "repositories"
		if counts[term] == 1 {
			noun = "repository"
		}
		fmt.Fprintf(w, "'%s' found in %d %s\n", term, counts[term], noun)
	}
}

func heading(w io.Writer, title string) {
	rule := strings.Repeat("=", headingWidth)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, title, rule)
}
