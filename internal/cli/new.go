package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/webstarter-labs/webstarter/internal/answers"
	"github.com/webstarter-labs/webstarter/internal/branding"
	"github.com/webstarter-labs/webstarter/internal/config"
	"github.com/webstarter-labs/webstarter/internal/generator"
	"github.com/webstarter-labs/webstarter/internal/output"
	"github.com/webstarter-labs/webstarter/internal/prompt"
	"github.com/webstarter-labs/webstarter/internal/remote"
)

var (
	newName       string
	newRepository string
	newPlugins    []string
	newRefspec    string
	newYes        bool
	newRefresh    bool
	newSet        []string
)

var newCmd = &cobra.Command{
	Use:   "new [dir]",
	Short: "Scaffold a new project",
	Long: `Scaffold a new project into dir (default: the current directory).

Answers given by flags are not prompted for. With --yes every remaining
question takes its default, which is the value saved in dir/.yo-rc.json by
a previous run when there is one.`,
	Example: `  web-starter new site --name "My Site" --plugin drupal
  web-starter new --yes --refspec 1.2.x --set install_type=advanced`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&newName, "name", "", "Project name")
	newCmd.Flags().StringVar(&newRepository, "repository", "", "Repository clone URL")
	newCmd.Flags().StringSliceVar(&newPlugins, "plugin", nil, "Add-on to include (repeatable)")
	newCmd.Flags().StringVar(&newRefspec, "refspec", "", "Template version (branch or tag)")
	newCmd.Flags().BoolVarP(&newYes, "yes", "y", false, "Accept defaults without prompting")
	newCmd.Flags().BoolVar(&newRefresh, "refresh", false, "Download the template even if cached")
	newCmd.Flags().StringArrayVar(&newSet, "set", nil, "Preset any answer as key=value (repeatable)")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	dest := "."
	if len(args) == 1 {
		dest = args[0]
	}

	presets, err := newPresets(cmd)
	if err != nil {
		return err
	}

	fetcher := remote.New(config.CacheDir(),
		remote.WithBaseURL(config.Get(config.KeyGitHubAPI)),
		remote.WithToken(os.Getenv("GITHUB_TOKEN")),
		remote.WithMaxAge(config.CacheMaxAge()),
		remote.WithRefresh(newRefresh),
		remote.WithUserAgent(branding.CLIName()+"/"+buildVersion),
	)

	g := generator.New(generator.Options{
		DestDir:       dest,
		ToolVersion:   buildVersion,
		TemplateOwner: config.Get(config.KeyTemplateOwner),
		TemplateRepo:  config.Get(config.KeyTemplateRepo),
		Asker:         chooseAsker(cmd, newYes, output.IsTTY()),
		Fetcher:       fetcher,
		Builtins:      builtins(),
		GlobalRoots:   globalRoots(),
		LocalRoots:    localRoots(),
		Presets:       presets,
	})

	res, err := g.Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	output.Fprintln(out, output.Success(fmt.Sprintf("Scaffolded %s", res.DestDir)))
	from := "downloaded"
	if res.Snapshot.FromCache {
		from = "cached"
	}
	fmt.Fprintf(out, "  template  %s/%s@%s (%s)\n", res.Snapshot.Owner, res.Snapshot.Repo, res.Snapshot.Ref, from)
	if len(res.Addons) > 0 {
		fmt.Fprintf(out, "  add-ons   %s\n", strings.Join(res.Addons, ", "))
	}
	fmt.Fprintf(out, "  files     %d copied, %s\n", len(res.Transfer.Transferred), strings.Join(res.Manifests.Files, ", "))
	return nil
}

// newPresets collects the answers given on the command line. Only flags
// that were set count; --set values are applied first so the named flags
// win.
func newPresets(cmd *cobra.Command) (answers.Answers, error) {
	presets, err := parseSet(newSet)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("name") {
		presets[answers.KeyName] = newName
	}
	if flags.Changed("repository") {
		presets[answers.KeyRepository] = newRepository
	}
	if flags.Changed("plugin") {
		presets[answers.KeyPlugins] = newPlugins
	}
	if flags.Changed("refspec") {
		presets[answers.KeyRefspec] = newRefspec
	}
	return presets, nil
}

// parseSet turns key=value pairs into answers. "true" and "false" become
// booleans; a comma-separated value stays a string.
func parseSet(pairs []string) (answers.Answers, error) {
	out := answers.Answers{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", pair)
		}
		switch value {
		case "true", "false":
			out[key] = value == "true"
		default:
			out[key] = value
		}
	}
	return out, nil
}

// chooseAsker picks how remaining questions are answered.
func chooseAsker(cmd *cobra.Command, yes, tty bool) prompt.Asker {
	switch {
	case yes:
		return prompt.StaticAsker{}
	case tty:
		return prompt.NewHuhAsker()
	default:
		return prompt.NewLineAsker(cmd.InOrStdin(), cmd.ErrOrStderr())
	}
}
