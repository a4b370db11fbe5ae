package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/livability-cli/internal/poi"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show provider configuration and quota state",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		configured := func(ok bool) string {
			if ok {
				return "configured"
			}
			return "not configured"
		}

		fmt.Printf("places:   %s (budget %d/day, %d calls per request, %d remaining today)\n",
			configured(cfg.Places.APIKey != ""),
			cfg.Places.DailyBudget, poi.CallsPerRequest(), env.Ledger.Remaining())
		fmt.Printf("overpass: %d mirrors\n", len(cfg.Overpass.Mirrors))
		fmt.Printf("transit:  %s (static fallback always available)\n", configured(cfg.Transit.BaseURL != ""))
		fmt.Printf("narrator: %s\n", configured(cfg.Anthropic.Key != ""))
		fmt.Printf("cache:    %s driver, TTL %dh\n", cfg.Cache.Driver, cfg.Cache.TTLHours)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
