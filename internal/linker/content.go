package linker

import (
	"sort"

	"github.com/pluto-labs/pluto/internal/integrations"
	"github.com/pluto-labs/pluto/internal/registry"
)

// ContentEntry is one selectable identifier and the tools that offer it.
type ContentEntry struct {
	ID          string   `json:"id"`
	Description string   `json:"description,omitempty"`
	Tools       []string `json:"tools"`
}

// Content lists every identifier the templates offer for tools, sorted by
// ID. The description comes from the first template's frontmatter that has
// one.
func Content(templates string, tools []integrations.ToolName) []ContentEntry {
	byID := make(map[string]*ContentEntry)
	for _, tool := range tools {
		profile, ok := integrations.Profile(tool)
		if !ok {
			continue
		}
		items := registry.PreferExtensions(registry.Discover(ToolTemplates(templates, tool), profile.Extensions), profile.Extensions)
		for _, d := range registry.ResolveDestinations(items, "") {
			e, ok := byID[d.Stem()]
			if !ok {
				e = &ContentEntry{ID: d.Stem()}
				byID[d.Stem()] = e
			}
			if e.Description == "" {
				e.Description = registry.ReadFrontmatter(d.Item.SourcePath).Description
			}
			if n := len(e.Tools); n == 0 || e.Tools[n-1] != string(tool) {
				e.Tools = append(e.Tools, string(tool))
			}
		}
	}

	out := make([]ContentEntry, 0, len(byID))
	for _, e := range byID {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
