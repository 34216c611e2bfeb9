package commands

import (
	"time"

	"github.com/rios0rios0/orgsearch/internal/domain/entities"
)

// SetPacerFactory overrides pacer construction for testing.
func (it *SearchCommand) SetPacerFactory(
	factory func(interval, cooldown time.Duration) entities.Pacer,
) {
	it.newPacer = factory
}
