package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/webstarter-labs/webstarter/internal/config"
	"github.com/webstarter-labs/webstarter/internal/remote"
)

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
	rootCmd.AddCommand(cacheCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage downloaded template snapshots",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every cached template snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := config.CacheDir()
		if err := remote.Clean(dir); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", dir)
		return nil
	},
}
