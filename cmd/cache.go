package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the result cache",
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete expired cache entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		removed, err := env.Cache.Purge(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("removed %d expired entries\n", removed)
		return nil
	},
}

var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the cache schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		// buildEnv migrates on open; this exists for provisioning a fresh
		// postgres database before first use.
		store, err := openStore(cmd.Context(), cfg.Cache)
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck

		if err := store.Migrate(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("cache schema ready")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cachePurgeCmd)
	cacheCmd.AddCommand(cacheMigrateCmd)
	rootCmd.AddCommand(cacheCmd)
}
