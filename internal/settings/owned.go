package settings

import "github.com/pluto-labs/pluto/internal/branding"

// Hook scripts installed into the private hooks directory.
const (
	CodeChangeScript = "on-code-change.sh"
	PromptScript     = "on-prompt.sh"
)

// Marker is the substring every hook command registered by this tool
// contains. Changing it orphans hooks written by earlier versions.
func Marker() string {
	return branding.StateDir() + "/hooks/"
}

// HookCommand returns the project-relative command for a hook script.
func HookCommand(script string) string {
	return Marker() + script
}

// KnownAllowEntries is the fixed set of allow-list entries offered at init.
func KnownAllowEntries() []string {
	return []string{
		"Bash(git add:*)",
		"Bash(git commit:*)",
		"Bash(git status:*)",
		"Bash(git diff:*)",
		"Bash(" + HookCommand(CodeChangeScript) + ")",
		"Bash(" + HookCommand(PromptScript) + ")",
	}
}
