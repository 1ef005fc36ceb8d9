package linker

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/pluto-labs/pluto/internal/branding"
	"github.com/pluto-labs/pluto/internal/integrations"
	"github.com/pluto-labs/pluto/internal/logging"
	"github.com/pluto-labs/pluto/internal/manifest"
	"github.com/pluto-labs/pluto/internal/platform"
	"github.com/pluto-labs/pluto/internal/reconcile"
	"github.com/pluto-labs/pluto/internal/registry"
	"github.com/pluto-labs/pluto/internal/settings"
)

// Template repository layout.
const (
	CommandsDir = "commands"
	HooksDir    = "hooks"
)

// Hook matchers registered in settings.
const codeChangeMatcher = "Write|Edit"

// Options are the user's choices for one install.
type Options struct {
	Tools      []integrations.ToolName
	Agents     []string
	CommitMode manifest.CommitMode
	AllowList  bool
}

// ToolResult is the outcome for one tool.
type ToolResult struct {
	Tool        integrations.ToolName
	Files       []string
	HooksAdded  int
	AllowAdded  []string
	SettingsRel string
	Warnings    []string
}

// Result is the outcome of Install.
type Result struct {
	Reconciled *reconcile.Report
	Hooks      []string // hook scripts copied into the project
	Tools      []ToolResult
	Manifest   *manifest.Manifest

	hookWarnings []string
}

// Warnings returns every warning from every tool.
func (r *Result) Warnings() []string {
	var all []string
	if r.Reconciled != nil {
		all = append(all, r.Reconciled.Warnings...)
	}
	all = append(all, r.hookWarnings...)
	for _, t := range r.Tools {
		all = append(all, t.Warnings...)
	}
	return all
}

// Installer installs templates from Templates into ProjectDir.
type Installer struct {
	Templates  string
	ProjectDir string
	// Now stamps the manifest. Defaults to time.Now.
	Now func() time.Time
}

// ToolTemplates returns the template directory for one tool.
func ToolTemplates(templates string, tool integrations.ToolName) string {
	return filepath.Join(templates, CommandsDir, string(tool))
}

// Available returns the content identifiers offered for tools: the union of
// each tool's resolved destination stems, sorted.
func Available(templates string, tools []integrations.ToolName) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, tool := range tools {
		profile, ok := integrations.Profile(tool)
		if !ok {
			continue
		}
		items := registry.PreferExtensions(registry.Discover(ToolTemplates(templates, tool), profile.Extensions), profile.Extensions)
		for _, id := range registry.Identifiers(registry.ResolveDestinations(items, "")) {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids
}

// Install undoes any previous install and then installs opts. Problems with
// a single tool or template become warnings; an error is returned only when
// the project itself cannot be updated.
func (in *Installer) Install(opts Options) (*Result, error) {
	logger := logging.Get("linker")
	now := in.Now
	if now == nil {
		now = time.Now
	}

	report, err := reconcile.UninstallPrevious(in.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("removing previous install: %w", err)
	}
	res := &Result{Reconciled: report}

	m := &manifest.Manifest{
		Version:     manifest.SchemaVersion,
		Tools:       toolStrings(opts.Tools),
		Agents:      append([]string{}, opts.Agents...),
		CommitMode:  opts.CommitMode,
		AllowList:   opts.AllowList,
		InstalledAt: now().UTC().Format(time.RFC3339),
		Files:       map[string][]string{},
	}
	if m.CommitMode == "" {
		m.CommitMode = manifest.CommitOff
	}

	var hooks map[string]bool
	if m.CommitMode.Enabled() && anySettings(opts.Tools) {
		hooks = in.installHookScripts(res)
	}

	for _, tool := range opts.Tools {
		profile, ok := integrations.Profile(tool)
		if !ok {
			res.Tools = append(res.Tools, ToolResult{Tool: tool, Warnings: []string{fmt.Sprintf("unknown tool %q skipped", tool)}})
			continue
		}
		tr := in.installTool(profile, opts, hooks)
		m.RecordFiles(string(tool), tr.Files)
		m.RecordAllowEntries(string(tool), tr.AllowAdded)
		res.Tools = append(res.Tools, tr)
		logger.Info().Str("tool", string(tool)).Int("files", len(tr.Files)).Int("warnings", len(tr.Warnings)).Msg("tool installed")
	}

	if err := manifest.NewStore(in.ProjectDir).Save(m); err != nil {
		return res, err
	}
	res.Manifest = m
	return res, nil
}

func (in *Installer) installTool(profile integrations.ToolProfile, opts Options, hooks map[string]bool) ToolResult {
	tr := ToolResult{Tool: profile.Name}

	root := ToolTemplates(in.Templates, profile.Name)
	items := registry.PreferExtensions(registry.Discover(root, profile.Extensions), profile.Extensions)
	if len(items) == 0 {
		tr.Warnings = append(tr.Warnings, fmt.Sprintf("%s: no templates found", profile.Name))
	}

	plan := PlanTool(profile, items, opts.Agents)
	applied := Apply(in.ProjectDir, plan)
	tr.Files = applied.Created
	tr.Warnings = append(tr.Warnings, applied.Warnings...)

	if !profile.SupportsSettings() || (len(hooks) == 0 && !opts.AllowList) {
		return tr
	}

	path := filepath.Join(in.ProjectDir, profile.SettingsFile)
	doc := settings.Load(path)

	if hooks[settings.CodeChangeScript] {
		cmd := settings.HookCommand(settings.CodeChangeScript)
		if settings.AddHook(doc, settings.PostToolUse, settings.HookDescriptor(codeChangeMatcher, cmd), settings.HookCommandExists(cmd)) {
			tr.HooksAdded++
		}
	}
	if hooks[settings.PromptScript] {
		cmd := settings.HookCommand(settings.PromptScript)
		if settings.AddHook(doc, settings.UserPromptSubmit, settings.HookDescriptor("", cmd), settings.HookCommandExists(cmd)) {
			tr.HooksAdded++
		}
	}
	if opts.AllowList {
		tr.AllowAdded = settings.AddAllowListEntries(doc, settings.KnownAllowEntries())
	}

	if tr.HooksAdded == 0 && len(tr.AllowAdded) == 0 {
		return tr
	}
	if err := settings.Save(path, doc); err != nil {
		tr.Warnings = append(tr.Warnings, fmt.Sprintf("%s: updating %s: %v", profile.Name, profile.SettingsFile, err))
		tr.HooksAdded, tr.AllowAdded = 0, nil
		return tr
	}
	tr.SettingsRel = filepath.ToSlash(profile.SettingsFile)
	return tr
}

// installHookScripts copies the hook scripts into the private hooks
// directory and marks them executable. A script that cannot be copied is not
// registered in any settings file.
func (in *Installer) installHookScripts(res *Result) map[string]bool {
	installed := make(map[string]bool)
	dstDir := filepath.Join(in.ProjectDir, branding.StateDir(), HooksDir)

	for _, script := range []string{settings.CodeChangeScript, settings.PromptScript} {
		src := filepath.Join(in.Templates, HooksDir, script)
		dst := filepath.Join(dstDir, script)
		if err := platform.CopyFile(src, dst, 0644); err != nil {
			res.hookWarnings = append(res.hookWarnings, fmt.Sprintf("hook %s not installed: %v", script, err))
			continue
		}
		if err := platform.MakeExecutable(dst); err != nil {
			res.hookWarnings = append(res.hookWarnings, fmt.Sprintf("hook %s not executable: %v", script, err))
			continue
		}
		installed[script] = true
		res.Hooks = append(res.Hooks, script)
	}
	return installed
}

func anySettings(tools []integrations.ToolName) bool {
	for _, t := range tools {
		if p, ok := integrations.Profile(t); ok && p.SupportsSettings() {
			return true
		}
	}
	return false
}

func toolStrings(tools []integrations.ToolName) []string {
	out := make([]string, len(tools))
	for i, t := range tools {
		out[i] = string(t)
	}
	return out
}
