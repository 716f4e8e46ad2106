package cli

import (
	"fmt"

	"github.com/aanand-mishra/starwars-api/internal/config"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "starwars-seed v%s\n", config.Version)
			return nil
		},
	}
}
