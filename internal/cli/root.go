package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/webstarter-labs/webstarter/internal/addons/drupal"
	"github.com/webstarter-labs/webstarter/internal/branding"
	"github.com/webstarter-labs/webstarter/internal/config"
	"github.com/webstarter-labs/webstarter/internal/generator"
	"github.com/webstarter-labs/webstarter/internal/output"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds a new web project from a remote template bundle,
the add-ons you select, and generated package.json, bower.json and Gemfile manifests.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		output.SetupLogging(verbose)
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		output.Error(err.Error())
		return err
	}
	return nil
}

// builtins lists the add-ons compiled into the binary.
func builtins() []generator.Builtin {
	return []generator.Builtin{
		{Addon: drupal.Descriptor(), New: drupal.New},
	}
}

// globalRoots are the user-level add-on roots: the managed root first, then
// addon_paths.
func globalRoots() []string {
	return append([]string{config.AddonsDir()}, config.AddonPaths()...)
}

// localRoots is the "addons" directory shipped next to the executable.
func localRoots() []string {
	exe, err := os.Executable()
	if err != nil {
		return nil
	}
	if real, err := filepath.EvalSymlinks(exe); err == nil {
		exe = real
	}
	return []string{filepath.Join(filepath.Dir(exe), "addons")}
}
