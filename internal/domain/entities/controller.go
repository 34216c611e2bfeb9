package entities

import (
	"github.com/spf13/cobra"
)

// ControllerBind holds the Cobra metadata a controller binds to.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is the contract every CLI controller fulfils.
type Controller interface {
	GetBind() ControllerBind
	Execute(cmd *cobra.Command, args []string)
}
