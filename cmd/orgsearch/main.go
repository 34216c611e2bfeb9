package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/orgsearch/internal/infrastructure/controllers"
)

func buildRootCommand(searchController *controllers.SearchController) *cobra.Command {
	bind := searchController.GetBind()
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   bind.Use,
		Short: bind.Short,
		Long:  bind.Long,
		Args:  cobra.NoArgs,
		Run: func(command *cobra.Command, arguments []string) {
			searchController.Execute(command, arguments)
		},
	}

	searchController.AddFlags(cmd)
	return cmd
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject the controller via DIG
	searchController := injectSearchController()
	cobraRoot := buildRootCommand(searchController)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'orgsearch': %s", err)
	}
}
