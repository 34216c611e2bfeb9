package github //nolint:testpackage // tests unexported functions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	gh "github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/orgsearch/internal/domain/repositories"
)

// newTestProvider returns a provider whose client talks to the given handler.
func newTestProvider(t *testing.T, handler http.Handler) *ProviderRepository {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := gh.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	return &ProviderRepository{client: client}
}

func TestGitHubProviderRepository(t *testing.T) {
	t.Parallel()

	t.Run("Name", func(t *testing.T) {
		t.Parallel()

		t.Run("should return github", func(t *testing.T) {
			t.Parallel()

			// given
			p := NewProviderRepository("token")

			// when
			name := p.Name()

			// then
			assert.Equal(t, "github", name)
		})
	})

	t.Run("ListRepositories", func(t *testing.T) {
		t.Parallel()

		t.Run("should map organization repositories to entities", func(t *testing.T) {
			t.Parallel()

			// given
			p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/orgs/my-org/repos", r.URL.Path)
				fmt.Fprint(w, `[
					{"name": "api", "full_name": "my-org/api", "html_url": "https://github.com/my-org/api"},
					{"name": "web", "full_name": "my-org/web", "html_url": "https://github.com/my-org/web"}
				]`)
			}))

			// when
			repos, err := p.ListRepositories(context.Background(), "my-org")

			// then
			require.NoError(t, err)
			require.Len(t, repos, 2)
			assert.Equal(t, "api", repos[0].Name)
			assert.Equal(t, "my-org/api", repos[0].FullName)
			assert.Equal(t, "https://github.com/my-org/api", repos[0].HTMLURL)
		})

		t.Run("should follow pagination", func(t *testing.T) {
			t.Parallel()

			// given
			p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("page") == "2" {
					fmt.Fprint(w, `[{"name": "web", "full_name": "my-org/web", "html_url": "https://github.com/my-org/web"}]`)
					return
				}
				w.Header().Set("Link", fmt.Sprintf(
					`<http://%s/orgs/my-org/repos?page=2>; rel="next"`, r.Host,
				))
				fmt.Fprint(w, `[{"name": "api", "full_name": "my-org/api", "html_url": "https://github.com/my-org/api"}]`)
			}))

			// when
			repos, err := p.ListRepositories(context.Background(), "my-org")

			// then
			require.NoError(t, err)
			assert.Len(t, repos, 2)
		})

		t.Run("should propagate enumeration failures", func(t *testing.T) {
			t.Parallel()

			// given
			p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))

			// when
			repos, err := p.ListRepositories(context.Background(), "no-such-org")

			// then
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to list repositories")
			assert.Nil(t, repos)
		})
	})

	t.Run("CountCodeMatches", func(t *testing.T) {
		t.Parallel()

		t.Run("should return the total match count", func(t *testing.T) {
			t.Parallel()

			// given
			p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/search/code", r.URL.Path)
				assert.Equal(t, `"needle" repo:my-org/api`, r.URL.Query().Get("q"))
				fmt.Fprint(w, `{"total_count": 42, "incomplete_results": false, "items": []}`)
			}))

			// when
			count, err := p.CountCodeMatches(context.Background(), `"needle" repo:my-org/api`)

			// then
			require.NoError(t, err)
			assert.Equal(t, 42, count)
		})

		t.Run("should classify a forbidden response as rate limited", func(t *testing.T) {
			t.Parallel()

			// given
			p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				fmt.Fprint(w, `{"message": "API rate limit exceeded"}`)
			}))

			// when
			count, err := p.CountCodeMatches(context.Background(), `"needle" repo:my-org/api`)

			// then
			require.ErrorIs(t, err, repositories.ErrRateLimited)
			assert.Zero(t, count)
		})

		t.Run("should classify an unprocessable query as unsearchable", func(t *testing.T) {
			t.Parallel()

			// given
			p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				fmt.Fprint(w, `{"message": "Validation Failed"}`)
			}))

			// when
			_, err := p.CountCodeMatches(context.Background(), `"needle" repo:my-org/empty`)

			// then
			require.ErrorIs(t, err, repositories.ErrUnsearchable)
		})
	})
}

func TestClassifySearchError(t *testing.T) {
	t.Parallel()

	response := func(status int) *http.Response {
		//nolint:exhaustruct // only the fields the Error methods touch matter here
		return &http.Response{
			StatusCode: status,
			Request: &http.Request{
				Method: http.MethodGet,
				URL:    &url.URL{Scheme: "https", Host: "api.github.com", Path: "/search/code"},
			},
		}
	}
	errorResponse := func(status int) *gh.ErrorResponse {
		//nolint:exhaustruct // only the status code matters here
		return &gh.ErrorResponse{Response: response(status)}
	}

	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name: "should classify a primary rate limit error",
			//nolint:exhaustruct // partial fixture
			err: &gh.RateLimitError{
				Response: response(http.StatusForbidden),
				Message:  "rate limit exceeded",
			},
			expected: repositories.ErrRateLimited,
		},
		{
			name: "should classify a secondary rate limit error",
			//nolint:exhaustruct // partial fixture
			err: &gh.AbuseRateLimitError{
				Response: response(http.StatusForbidden),
				Message:  "abuse detected",
			},
			expected: repositories.ErrRateLimited,
		},
		{
			name:     "should classify a 403 response as rate limited",
			err:      errorResponse(http.StatusForbidden),
			expected: repositories.ErrRateLimited,
		},
		{
			name:     "should classify a 422 response as unsearchable",
			err:      errorResponse(http.StatusUnprocessableEntity),
			expected: repositories.ErrUnsearchable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			classified := classifySearchError(tt.err)

			// then
			assert.ErrorIs(t, classified, tt.expected)
		})
	}

	t.Run("should pass through server errors unclassified", func(t *testing.T) {
		t.Parallel()

		// given
		err := errorResponse(http.StatusInternalServerError)

		// when
		classified := classifySearchError(err)

		// then
		assert.NotErrorIs(t, classified, repositories.ErrRateLimited)
		assert.NotErrorIs(t, classified, repositories.ErrUnsearchable)
	})

	t.Run("should pass through plain errors unclassified", func(t *testing.T) {
		t.Parallel()

		// given
		err := errors.New("connection reset")

		// when
		classified := classifySearchError(err)

		// then
		assert.Equal(t, err, classified)
	})
}
