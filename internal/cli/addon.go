package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/webstarter-labs/webstarter/internal/config"
	"github.com/webstarter-labs/webstarter/internal/discovery"
	"github.com/webstarter-labs/webstarter/internal/generator"
	"github.com/webstarter-labs/webstarter/internal/install"
	"github.com/webstarter-labs/webstarter/internal/output"
)

var addonListJSON bool

func init() {
	addonListCmd.Flags().BoolVar(&addonListJSON, "json", false, "Output in JSON format")
	addonCmd.AddCommand(addonListCmd)
	addonCmd.AddCommand(addonInstallCmd)
	addonCmd.AddCommand(addonLinkCmd)
	addonCmd.AddCommand(addonUpdateCmd)
	addonCmd.AddCommand(addonRemoveCmd)
	rootCmd.AddCommand(addonCmd)
}

var addonCmd = &cobra.Command{
	Use:   "addon",
	Short: "Manage add-on packages",
	Long: `Add-on packages are directories named generator-<name> holding one or more
addon.yaml entries. They are searched for in ~/.web-starter/addons, in every
addon_paths root, and in the addons directory next to the executable.`,
}

var addonListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the add-ons offered by new",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := generator.New(generator.Options{
			Builtins:    builtins(),
			GlobalRoots: globalRoots(),
			LocalRoots:  localRoots(),
		})
		catalog, err := g.Discover()
		if err != nil {
			return err
		}
		if addonListJSON {
			return printAddonsJSON(cmd, catalog)
		}
		if len(catalog) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No add-ons available.")
			return nil
		}
		return printAddonsTable(cmd, catalog)
	},
}

func printAddonsTable(cmd *cobra.Command, catalog []discovery.Addon) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tNAME\tVALUE\tNAMESPACE\tSOURCE")
	for _, a := range catalog {
		source := a.Path
		if source == "" {
			source = "built-in"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.Category, a.Name, a.Value, a.Namespace, source)
	}
	return w.Flush()
}

func printAddonsJSON(cmd *cobra.Command, catalog []discovery.Addon) error {
	if catalog == nil {
		catalog = []discovery.Addon{}
	}
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

var addonInstallCmd = &cobra.Command{
	Use:   "install <git-url>",
	Short: "Clone an add-on package into the add-on root",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var pkg *install.Package
		err := output.RunWithSpinner(cmd.Context(), "Cloning "+args[0], func(ctx context.Context) error {
			var err error
			pkg, err = install.Install(ctx, args[0], config.AddonsDir())
			return err
		})
		if err != nil {
			return err
		}
		output.Fprintln(cmd.OutOrStdout(), output.Success("Installed "+pkg.Name))
		return nil
	},
}

var addonLinkCmd = &cobra.Command{
	Use:   "link <path>",
	Short: "Link a local add-on package into the add-on root",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := install.Link(args[0], config.AddonsDir())
		if err != nil {
			return err
		}
		output.Fprintln(cmd.OutOrStdout(), output.Success(fmt.Sprintf("Linked %s -> %s", pkg.Name, pkg.Target)))
		return nil
	},
}

var addonUpdateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Pull the latest commits of an installed add-on package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := install.PackageName(args[0])
		err := output.RunWithSpinner(cmd.Context(), "Updating "+name, func(ctx context.Context) error {
			return install.Update(ctx, config.AddonsDir(), name)
		})
		if err != nil {
			return err
		}
		output.Fprintln(cmd.OutOrStdout(), output.Success("Updated "+name))
		return nil
	},
}

var addonRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an installed or linked add-on package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := install.PackageName(args[0])
		if err := install.Remove(config.AddonsDir(), name); err != nil {
			return err
		}
		output.Fprintln(cmd.OutOrStdout(), output.Success("Removed "+name))
		return nil
	},
}
