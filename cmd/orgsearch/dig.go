package main

import (
	"github.com/rios0rios0/orgsearch/internal"
	"github.com/rios0rios0/orgsearch/internal/infrastructure/controllers"
	"go.uber.org/dig"
)

func injectSearchController() *controllers.SearchController {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var searchController *controllers.SearchController
	if err := container.Invoke(func(sc *controllers.SearchController) {
		searchController = sc
	}); err != nil {
		panic(err)
	}

	return searchController
}
