package integrations

import "path/filepath"

// ToolName identifies a supported AI tool integration.
type ToolName string

const (
	ClaudeCode ToolName = "claude-code"
	Cursor     ToolName = "cursor"
	Windsurf   ToolName = "windsurf"
	Copilot    ToolName = "copilot"
	Cline      ToolName = "cline"
	Codex      ToolName = "codex"
)

// Mode is how a tool's selected content is materialized.
type Mode string

const (
	// ModeFanOut writes one file per selected content item.
	ModeFanOut Mode = "fanout"
	// ModeAggregate concatenates every selected item into one document.
	ModeAggregate Mode = "aggregate"
)

// ToolProfile is the static description of one tool's conventions.
// Paths are relative to the project root.
type ToolProfile struct {
	Name            ToolName
	DisplayName     string
	Mode            Mode
	ContentDir      string   // fan-out destination directory
	AggregateFile   string   // aggregate destination file
	AggregateHeader string   // fixed text the aggregate file starts with
	Extensions      []string // accepted template extensions, most preferred first
	SettingsFile    string   // "" when the tool has no machine-readable settings
}

// SupportsSettings reports whether hooks and allow-list entries can be
// registered for the tool.
func (p ToolProfile) SupportsSettings() bool {
	return p.SettingsFile != ""
}

// Destination returns the project-relative path content lands in: the
// content directory for fan-out tools, the aggregate file otherwise.
func (p ToolProfile) Destination() string {
	if p.Mode == ModeAggregate {
		return p.AggregateFile
	}
	return p.ContentDir
}

// AllTools returns all supported tool names in display order.
func AllTools() []ToolName {
	return []ToolName{ClaudeCode, Cursor, Windsurf, Copilot, Cline, Codex}
}

// toolRegistry maps each tool to its installation conventions.
var toolRegistry = map[ToolName]ToolProfile{
	ClaudeCode: {
		Name:         ClaudeCode,
		DisplayName:  "Claude Code",
		Mode:         ModeFanOut,
		ContentDir:   filepath.Join(".claude", "commands"),
		Extensions:   []string{".md"},
		SettingsFile: filepath.Join(".claude", "settings.json"),
	},
	Cursor: {
		Name:         Cursor,
		DisplayName:  "Cursor",
		Mode:         ModeFanOut,
		ContentDir:   filepath.Join(".cursor", "rules"),
		Extensions:   []string{".mdc", ".md"},
		SettingsFile: filepath.Join(".cursor", "settings.json"),
	},
	Windsurf: {
		Name:         Windsurf,
		DisplayName:  "Windsurf",
		Mode:         ModeFanOut,
		ContentDir:   filepath.Join(".windsurf", "rules"),
		Extensions:   []string{".md"},
		SettingsFile: filepath.Join(".windsurf", "settings.json"),
	},
	Copilot: {
		Name:            Copilot,
		DisplayName:     "GitHub Copilot",
		Mode:            ModeAggregate,
		AggregateFile:   filepath.Join(".github", "copilot-instructions.md"),
		AggregateHeader: "# GitHub Copilot Instructions\n\nGenerated by Pluto.\n\n",
		Extensions:      []string{".md"},
	},
	Cline: {
		Name:         Cline,
		DisplayName:  "Cline",
		Mode:         ModeFanOut,
		ContentDir:   filepath.Join(".cline", "rules"),
		Extensions:   []string{".md"},
		SettingsFile: filepath.Join(".cline", "settings.json"),
	},
	Codex: {
		Name:            Codex,
		DisplayName:     "Codex",
		Mode:            ModeAggregate,
		AggregateFile:   "AGENTS.md",
		AggregateHeader: "# AI Agents\n\nGenerated by Pluto.\n\n",
		Extensions:      []string{".md"},
	},
}

// ParseToolName converts a string to a ToolName, returning false if invalid.
func ParseToolName(s string) (ToolName, bool) {
	name := ToolName(s)
	if _, ok := toolRegistry[name]; ok {
		return name, true
	}
	return "", false
}

// Profile returns the profile for a tool.
func Profile(name ToolName) (ToolProfile, bool) {
	p, ok := toolRegistry[name]
	if !ok {
		return ToolProfile{}, false
	}
	p.Extensions = append([]string(nil), p.Extensions...)
	return p, true
}

// Profiles returns every profile in display order.
func Profiles() []ToolProfile {
	out := make([]ToolProfile, 0, len(toolRegistry))
	for _, name := range AllTools() {
		p, _ := Profile(name)
		out = append(out, p)
	}
	return out
}

// SettingsProfiles returns the profiles that have a settings file.
func SettingsProfiles() []ToolProfile {
	var out []ToolProfile
	for _, p := range Profiles() {
		if p.SupportsSettings() {
			out = append(out, p)
		}
	}
	return out
}
