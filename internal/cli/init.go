package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pluto-labs/pluto/internal/branding"
	"github.com/pluto-labs/pluto/internal/integrations"
	"github.com/pluto-labs/pluto/internal/linker"
	"github.com/pluto-labs/pluto/internal/manifest"
	"github.com/pluto-labs/pluto/internal/ui"
	"github.com/pluto-labs/pluto/internal/userdata"
	"github.com/spf13/cobra"
)

// defaultAgent is pre-selected in the content prompt when available.
const defaultAgent = "pluto-snap"

var (
	initTools      []string
	initAgents     []string
	initCommitMode string
	initAllowList  bool
	initYes        bool
	initTemplates  string
)

func init() {
	initCmd.Flags().StringSliceVar(&initTools, "tools", nil, "Comma-separated AI tools to configure (e.g. claude-code,cursor)")
	initCmd.Flags().StringSliceVar(&initAgents, "agents", nil, "Comma-separated content identifiers to install")
	initCmd.Flags().StringVar(&initCommitMode, "commit-mode", "", "Git workflow hooks: off, manual or auto")
	initCmd.Flags().BoolVar(&initAllowList, "allow-list", false, "Add git commands to the tools' permission allow list")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Accept defaults for anything not given as a flag")
	initCmd.Flags().StringVar(&initTemplates, "templates", "", "Template directory (default: PLUTO_TEMPLATES, config templates_dir, ~/.pluto/templates)")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Install AI assistant configuration into this project",
	Long: `Install commands, rules and hooks for the selected AI tools into the current
project. Any previous installation is removed first, so running init again
replaces it.

Without flags, init asks which tools, content, commit mode and allow-list
option to use.`,
	Example: `  pluto init
  pluto init --tools claude-code,codex --agents pluto-snap --commit-mode manual --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		return runInit(e, initFlags{
			tools:         initTools,
			agents:        initAgents,
			commitMode:    initCommitMode,
			commitModeSet: cmd.Flags().Changed("commit-mode"),
			allowList:     initAllowList,
			allowListSet:  cmd.Flags().Changed("allow-list"),
			yes:           initYes,
			templates:     initTemplates,
		})
	},
}

type initFlags struct {
	tools         []string
	agents        []string
	commitMode    string
	commitModeSet bool
	allowList     bool
	allowListSet  bool
	yes           bool
	templates     string
}

// complete reports whether every selection was given on the command line,
// in which case init runs without asking anything.
func (f initFlags) complete() bool {
	return len(f.tools) > 0 && len(f.agents) > 0 && f.commitModeSet && f.allowListSet
}

func runInit(e *env, f initFlags) error {
	templates, err := userdata.TemplatesRoot(f.templates)
	if err != nil {
		return fmt.Errorf("%w (pass --templates or set %s)", err, branding.EnvVar("TEMPLATES"))
	}

	e.println(ui.Banner(branding.DisplayName(), branding.Description()))

	tools, err := chooseTools(e, f)
	if err != nil {
		return e.cancelled(err)
	}
	if len(tools) == 0 {
		e.println(ui.Warn("No tools selected."))
		return nil
	}

	agents, err := chooseAgents(e, f, linker.Available(templates, tools))
	if err != nil {
		return e.cancelled(err)
	}
	if len(agents) == 0 {
		e.println(ui.Warn("No commands selected."))
		return nil
	}

	mode, err := chooseCommitMode(e, f)
	if err != nil {
		return e.cancelled(err)
	}

	allow, err := chooseAllowList(e, f, tools)
	if err != nil {
		return e.cancelled(err)
	}

	if !f.yes && !f.complete() {
		ok, err := e.prompter.Confirm("Ready to install? This will create configuration files in your project.", true)
		if err != nil {
			return e.cancelled(err)
		}
		if !ok {
			e.println(ui.Warn("Installation cancelled."))
			return nil
		}
	}

	in := &linker.Installer{Templates: templates, ProjectDir: e.dir, Now: e.now}
	res, err := in.Install(linker.Options{Tools: tools, Agents: agents, CommitMode: mode, AllowList: allow})
	if err != nil {
		return fmt.Errorf("installing: %w", err)
	}

	printInstallSummary(e, res)
	return nil
}

func chooseTools(e *env, f initFlags) ([]integrations.ToolName, error) {
	if len(f.tools) > 0 {
		return parseTools(f.tools)
	}

	var labels []string
	byLabel := make(map[string]integrations.ToolName)
	for _, p := range integrations.Profiles() {
		label := fmt.Sprintf("%s (%s)", p.DisplayName, p.Name)
		labels = append(labels, label)
		byLabel[label] = p.Name
	}

	chosen, err := e.prompter.MultiSelect("Which AI tools do you use?", labels, nil)
	if err != nil {
		return nil, err
	}
	tools := make([]integrations.ToolName, 0, len(chosen))
	for _, c := range chosen {
		tools = append(tools, byLabel[c])
	}
	return tools, nil
}

func parseTools(names []string) ([]integrations.ToolName, error) {
	var tools []integrations.ToolName
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		tool, ok := integrations.ParseToolName(n)
		if !ok {
			return nil, fmt.Errorf("unknown tool %q (supported: %s)", n, strings.Join(toolIDs(), ", "))
		}
		if !slices.Contains(tools, tool) {
			tools = append(tools, tool)
		}
	}
	return tools, nil
}

func toolIDs() []string {
	var ids []string
	for _, t := range integrations.AllTools() {
		ids = append(ids, string(t))
	}
	return ids
}

func chooseAgents(e *env, f initFlags, available []string) ([]string, error) {
	if len(f.agents) > 0 {
		var agents []string
		for _, a := range f.agents {
			a = strings.TrimSpace(a)
			if a == "" || slices.Contains(agents, a) {
				continue
			}
			if !slices.Contains(available, a) && !matchesOriginal(available, a) {
				e.println(ui.Warn(fmt.Sprintf("no template named %q for the selected tools", a)))
			}
			agents = append(agents, a)
		}
		return agents, nil
	}

	if len(available) == 0 {
		return nil, nil
	}
	if f.yes {
		if slices.Contains(available, defaultAgent) {
			return []string{defaultAgent}, nil
		}
		return available, nil
	}

	var defaults []string
	if slices.Contains(available, defaultAgent) {
		defaults = []string{defaultAgent}
	}
	return e.prompter.MultiSelect("Which commands do you want to install?", available, defaults)
}

// matchesOriginal reports whether name is the base of a collision-suffixed
// identifier, e.g. "foo" for "foo-bar".
func matchesOriginal(available []string, name string) bool {
	for _, a := range available {
		if strings.HasPrefix(a, name+"-") {
			return true
		}
	}
	return false
}

func chooseCommitMode(e *env, f initFlags) (manifest.CommitMode, error) {
	if f.commitModeSet {
		return manifest.ParseCommitMode(f.commitMode)
	}
	if f.yes {
		return manifest.CommitOff, nil
	}

	options := make([]string, len(manifest.CommitModes))
	for i, m := range manifest.CommitModes {
		options[i] = string(m)
	}
	choice, err := e.prompter.Select("Commit workflow (off: no hooks, manual: log prompts and changes, auto: also commit after each change)", options, string(manifest.CommitOff))
	if err != nil {
		return "", err
	}
	return manifest.ParseCommitMode(choice)
}

func chooseAllowList(e *env, f initFlags, tools []integrations.ToolName) (bool, error) {
	if f.allowListSet {
		return f.allowList, nil
	}
	if f.yes {
		return false, nil
	}

	settingsCapable := false
	for _, t := range tools {
		if p, ok := integrations.Profile(t); ok && p.SupportsSettings() {
			settingsCapable = true
		}
	}
	if !settingsCapable {
		return false, nil
	}
	return e.prompter.Confirm("Allow the assistants to run git add/commit/status/diff without asking?", false)
}

func printInstallSummary(e *env, res *linker.Result) {
	if r := res.Reconciled; r != nil && r.Changed() {
		e.println(ui.Dim(fmt.Sprintf("Removed previous installation (%d files).", len(r.RemovedFiles))))
	}

	e.println()
	for _, t := range res.Tools {
		p, _ := integrations.Profile(t.Tool)
		line := fmt.Sprintf("%s: %d file(s) in %s", p.DisplayName, len(t.Files), p.Destination())
		if t.SettingsRel != "" {
			line += fmt.Sprintf(", %d hook(s), %d allow entr(ies) in %s", t.HooksAdded, len(t.AllowAdded), t.SettingsRel)
		}
		if len(t.Files) == 0 {
			e.println(ui.Warn(line))
		} else {
			e.println(ui.Success(line))
		}
	}
	if len(res.Hooks) > 0 {
		e.println(ui.Success(fmt.Sprintf("Hook scripts: %s", strings.Join(res.Hooks, ", "))))
	}
	e.warnings(res.Warnings())

	e.println()
	e.println(ui.Title("Installation complete!"))
}
