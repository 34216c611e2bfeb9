package controllers

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/orgsearch/config"
	"github.com/rios0rios0/orgsearch/internal/domain/commands"
	"github.com/rios0rios0/orgsearch/internal/domain/entities"
)

const tokenEnvVar = "GITHUB_TOKEN"

// SearchController handles the root command: survey an organization's
// repositories for a set of literal strings.
type SearchController struct {
	command commands.Search
}

// NewSearchController creates a new SearchController.
func NewSearchController(command commands.Search) *SearchController {
	return &SearchController{command: command}
}

// GetBind returns the Cobra command metadata for the search controller.
func (it *SearchController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "orgsearch",
		Short: "Search strings across all repositories of an organization",
		Long: `Search for literal strings across all repositories of a GitHub
organization using the platform's code-search API, and report which
repositories contain which strings.

File extensions and paths can be excluded from the search with ignore
patterns (e.g. "md", "*.json", "src/generated").

The search runs one query per repository per string, paced to stay under
the shared code-search rate limit, and degrades every failure to "not
found" so a single flaky repository never suppresses the rest of the
survey.`,
	}
}

// AddFlags adds the search flags to the given Cobra command.
func (it *SearchController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("strings", "s", nil, "Strings to search for (required, repeatable)")
	cmd.Flags().StringSliceP("ignore", "i", nil,
		"Patterns to ignore: file extensions like 'md' or 'json', or paths like 'src/generated'")
	cmd.Flags().StringP("token", "t", "",
		"Personal access token (or set the "+tokenEnvVar+" env var)")
	cmd.Flags().StringP("org", "o", "", "Organization whose repositories are searched")
	cmd.Flags().StringP("config", "c", "", "Path to config file (default: auto-detect)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	_ = cmd.MarkFlagRequired("strings")
}

// Execute runs the survey and prints the aggregated report.
func (it *SearchController) Execute(cmd *cobra.Command, _ []string) {
	terms, _ := cmd.Flags().GetStringSlice("strings")
	ignore, _ := cmd.Flags().GetStringSlice("ignore")
	tokenFlag, _ := cmd.Flags().GetString("token")
	orgFlag, _ := cmd.Flags().GetString("org")
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	settings := loadSettings(configPath)

	org := orgFlag
	if org == "" {
		org = settings.Organization
	}
	if org == "" {
		logger.Fatal("Organization is required; set --org or the organization key in the config file")
	}

	if len(ignore) == 0 {
		ignore = settings.Ignore
	}

	token := resolveToken(tokenFlag, settings)
	if token == "" {
		logger.Fatalf(
			"A personal access token is required; set %s, use --token, or add token to the config file "+
				"(create one at https://github.com/settings/tokens)",
			tokenEnvVar,
		)
	}

	logger.Infof("Searching for strings: %v", terms)
	logger.Infof("Organization: %s", org)
	if len(ignore) > 0 {
		logger.Infof("Ignoring patterns: %v", ignore)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := it.command.Execute(ctx, settings, commands.SearchOptions{
		Organization: org,
		Token:        token,
		Terms:        terms,
		Ignore:       ignore,
		Verbose:      verbose,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("Search interrupted by user.")
			return
		}
		logger.Fatalf("Search failed: %v", err)
	}

	entities.WriteResults(os.Stdout, report)
	entities.WriteSummary(os.Stdout, report)
}

// loadSettings loads the config file when one is given or discovered, and
// falls back to the built-in defaults otherwise.
func loadSettings(configPath string) *config.Config {
	if configPath == "" {
		found, err := config.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
			return config.Default()
		}
		configPath = found
	}

	logger.Infof("Using config file: %s", configPath)

	settings, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	return settings
}

// resolveToken applies the token precedence: flag, then environment
// variable, then config file.
func resolveToken(tokenFlag string, settings *config.Config) string {
	if tokenFlag != "" {
		return tokenFlag
	}
	if env := os.Getenv(tokenEnvVar); env != "" {
		return env
	}
	return settings.Token
}
