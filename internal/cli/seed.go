package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/starwars-api/internal/config"
	"github.com/aanand-mishra/starwars-api/internal/storage/backend"
	"github.com/aanand-mishra/starwars-api/internal/storage/seed"
	"github.com/spf13/cobra"
)

func newSeedCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and insert the sample catalogue",
		Long: "Seed opens the configured database (creating the schema if needed) and\n" +
			"inserts sample people, planets, vehicles and a demo user. Collections\n" +
			"that already contain rows are left untouched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.resolveConfigPath())
			if err != nil {
				return err
			}

			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			store, err := backend.Open(cfg, log)
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			defer store.Close()

			sum, err := seed.Run(cmd.Context(), store)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.jsonMode {
				return json.NewEncoder(out).Encode(sum)
			}
			fmt.Fprintf(out, "seeded users=%d people=%d planets=%d vehicles=%d\n",
				sum.Users, sum.People, sum.Planets, sum.Vehicles)
			return nil
		},
	}
}
