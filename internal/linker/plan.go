package linker

import (
	"path/filepath"
	"strings"

	"github.com/pluto-labs/pluto/internal/integrations"
	"github.com/pluto-labs/pluto/internal/registry"
)

// FileCopy copies one template verbatim. Dest is project relative.
type FileCopy struct {
	Source string
	Dest   string
}

// Aggregate concatenates Sources, in order, under Header into Path.
type Aggregate struct {
	Path    string
	Header  string
	Sources []string
}

// Plan is what one tool's install writes. Exactly one of Copies and
// Aggregate is used, depending on the tool's mode.
type Plan struct {
	Tool      integrations.ToolName
	Copies    []FileCopy
	Aggregate *Aggregate
}

// Empty reports whether the plan writes nothing.
func (p *Plan) Empty() bool {
	return len(p.Copies) == 0 && p.Aggregate == nil
}

// PlanTool resolves items to destination names, keeps the selected ones and
// lays them out for profile. Fan-out files keep their own extension.
// Aggregate sources are ordered by destination name; an empty selection
// plans no aggregate file.
func PlanTool(profile integrations.ToolProfile, items []registry.ContentItem, selection []string) *Plan {
	dests := registry.Select(registry.ResolveDestinations(items, ""), selection)
	plan := &Plan{Tool: profile.Name}

	switch profile.Mode {
	case integrations.ModeAggregate:
		if len(dests) == 0 {
			return plan
		}
		agg := &Aggregate{Path: profile.AggregateFile, Header: profile.AggregateHeader}
		for _, d := range dests {
			agg.Sources = append(agg.Sources, d.Item.SourcePath)
		}
		plan.Aggregate = agg
	default:
		for _, d := range dests {
			plan.Copies = append(plan.Copies, FileCopy{
				Source: d.Item.SourcePath,
				Dest:   filepath.Join(profile.ContentDir, d.DestFilename),
			})
		}
	}
	return plan
}

// RenderAggregate joins contents under header. Each content loses its
// trailing newlines and is followed by one blank line.
func RenderAggregate(header string, contents []string) string {
	var b strings.Builder
	b.WriteString(header)
	for _, c := range contents {
		b.WriteString(strings.TrimRight(c, "\r\n"))
		b.WriteString("\n\n")
	}
	return b.String()
}
