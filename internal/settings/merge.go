package settings

import (
	"sort"
	"strings"
)

// Keys this package writes under.
const (
	hooksKey       = "hooks"
	permissionsKey = "permissions"
	allowKey       = "allow"
)

// Hook categories used when registering hooks.
const (
	PostToolUse      = "PostToolUse"
	UserPromptSubmit = "UserPromptSubmit"
)

// HookDescriptor builds a Claude Code style hook registration: a matcher and
// a list of command hooks.
func HookDescriptor(matcher, command string) map[string]any {
	entry := map[string]any{
		"hooks": []any{
			map[string]any{"type": "command", "command": command},
		},
	}
	if matcher != "" {
		entry["matcher"] = matcher
	}
	return entry
}

// AddHook appends descriptor to hooks[category] unless an entry there
// already satisfies unique. Other categories are never touched.
func AddHook(doc Document, category string, descriptor map[string]any, unique func(entry any) bool) bool {
	hooks := EnsureObject(doc, hooksKey)
	return AppendUnique(hooks, category, descriptor, unique)
}

// AddAllowListEntries inserts each entry into permissions.allow unless it
// is already present, preserving order. It returns the entries it inserted,
// which is what a later removal must take back out.
func AddAllowListEntries(doc Document, entries []string) []string {
	perms := EnsureObject(doc, permissionsKey)

	var added []string
	for _, e := range entries {
		entry := e
		if AppendUnique(perms, allowKey, entry, func(v any) bool {
			s, ok := v.(string)
			return ok && s == entry
		}) {
			added = append(added, entry)
		}
	}
	return added
}

// RemoveOwned removes every hook entry matching ownedHook and every
// allow-list string matching ownedAllow. Hook categories, the hooks object,
// the allow list and the permissions object are deleted when this removal
// emptied them; containers that were already empty are left alone.
// changed reports whether anything was removed; empty reports that the
// document has no keys left, so the caller can delete the file.
func RemoveOwned(doc Document, ownedHook func(entry any) bool, ownedAllow func(entry string) bool) (changed, empty bool) {
	if hooks, ok := doc[hooksKey].(map[string]any); ok && ownedHook != nil {
		removedAny := false
		for _, category := range sortedKeys(hooks) {
			if RemoveWhere(hooks, category, ownedHook) > 0 {
				removedAny = true
				PruneEmpty(hooks, category)
			}
		}
		if removedAny {
			changed = true
			PruneEmpty(doc, hooksKey)
		}
	}

	if perms, ok := doc[permissionsKey].(map[string]any); ok && ownedAllow != nil {
		removed := RemoveWhere(perms, allowKey, func(v any) bool {
			s, ok := v.(string)
			return ok && ownedAllow(s)
		})
		if removed > 0 {
			changed = true
			PruneEmpty(perms, allowKey)
			PruneEmpty(doc, permissionsKey)
		}
	}

	return changed, len(doc) == 0
}

// OwnedHook returns a predicate matching hook entries whose command, or any
// nested hooks[].command, contains marker. Both the nested Claude Code shape
// and the older flat {"matcher", "command"} shape are recognized.
func OwnedHook(marker string) func(entry any) bool {
	return func(entry any) bool {
		for _, cmd := range entryCommands(entry) {
			if strings.Contains(cmd, marker) {
				return true
			}
		}
		return false
	}
}

// HookCommandExists returns a uniqueness predicate for AddHook: an entry
// already registers command when one of its commands contains it.
func HookCommandExists(command string) func(entry any) bool {
	return OwnedHook(command)
}

// InSet returns a predicate matching strings present in set.
func InSet(set []string) func(string) bool {
	lookup := make(map[string]bool, len(set))
	for _, s := range set {
		lookup[s] = true
	}
	return func(s string) bool { return lookup[s] }
}

func entryCommands(entry any) []string {
	obj, ok := entry.(map[string]any)
	if !ok {
		return nil
	}
	var cmds []string
	if c, ok := obj["command"].(string); ok {
		cmds = append(cmds, c)
	}
	if nested, ok := obj["hooks"].([]any); ok {
		for _, h := range nested {
			if hm, ok := h.(map[string]any); ok {
				if c, ok := hm["command"].(string); ok {
					cmds = append(cmds, c)
				}
			}
		}
	}
	return cmds
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
