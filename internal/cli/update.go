package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/pluto-labs/pluto/internal/branding"
	"github.com/pluto-labs/pluto/internal/catalog"
	"github.com/pluto-labs/pluto/internal/config"
	"github.com/pluto-labs/pluto/internal/integrations"
	"github.com/pluto-labs/pluto/internal/linker"
	"github.com/pluto-labs/pluto/internal/manifest"
	"github.com/pluto-labs/pluto/internal/ui"
	"github.com/spf13/cobra"
)

var updateBranch string

func init() {
	updateCmd.Flags().StringVar(&updateBranch, "branch", "", "Template repository branch (default: config default_branch)")
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Re-install this project's configuration from the latest templates",
	Long: `Fetch the template repository and re-install the tools and content recorded
in .pluto/config.json. The project must have been set up with init first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		branch := updateBranch
		if branch == "" {
			branch = config.Branch()
		}
		return runUpdate(cmd.Context(), e, config.TemplateRepoURL(), branch)
	},
}

func runUpdate(ctx context.Context, e *env, repoURL, branch string) error {
	m, err := manifest.NewStore(e.dir).Load()
	if err != nil {
		if errors.Is(err, manifest.ErrNotInitialized) {
			return fmt.Errorf("%w: run '%s init' first", err, branding.CLIName())
		}
		return err
	}

	tools, err := manifestTools(e, m)
	if err != nil {
		return err
	}

	e.println(ui.Dim(fmt.Sprintf("Fetching templates from %s (%s)...", repoURL, branch)))
	dir, cleanup, err := catalog.CloneTemp(ctx, e.cloner, repoURL, branch)
	if err != nil {
		return fmt.Errorf("fetching templates: %w", err)
	}
	defer cleanup()

	in := &linker.Installer{Templates: dir, ProjectDir: e.dir, Now: e.now}
	res, err := in.Install(linker.Options{
		Tools:      tools,
		Agents:     m.Agents,
		CommitMode: m.CommitMode,
		AllowList:  m.AllowList,
	})
	if err != nil {
		return fmt.Errorf("installing: %w", err)
	}

	printInstallSummary(e, res)
	return nil
}

// manifestTools maps recorded tool ids back to tool names. Ids this build
// no longer knows are skipped with a warning.
func manifestTools(e *env, m *manifest.Manifest) ([]integrations.ToolName, error) {
	var tools []integrations.ToolName
	for _, id := range m.Tools {
		tool, ok := integrations.ParseToolName(id)
		if !ok {
			e.println(ui.Warn(fmt.Sprintf("skipping unknown tool %q from %s", id, manifest.NewStore(e.dir).Path())))
			continue
		}
		tools = append(tools, tool)
	}
	if len(tools) == 0 {
		return nil, fmt.Errorf("manifest lists no supported tools; run '%s init' again", branding.CLIName())
	}
	return tools, nil
}
