package linker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pluto-labs/pluto/internal/logging"
	"github.com/pluto-labs/pluto/internal/platform"
)

// ApplyResult lists what Apply wrote. Created paths are project relative
// and slash separated.
type ApplyResult struct {
	Created  []string
	Warnings []string
}

// Apply writes plan into projectDir. A template that cannot be read is
// skipped with a warning and the rest of the plan still runs.
func Apply(projectDir string, plan *Plan) ApplyResult {
	logger := logging.Get("linker")
	var res ApplyResult

	for _, c := range plan.Copies {
		dst := filepath.Join(projectDir, c.Dest)
		if err := platform.CopyFile(c.Source, dst, 0644); err != nil {
			logger.Debug().Err(err).Str("source", c.Source).Msg("template skipped")
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: skipped %s: %v", plan.Tool, filepath.Base(c.Source), err))
			continue
		}
		res.Created = append(res.Created, filepath.ToSlash(c.Dest))
	}

	if agg := plan.Aggregate; agg != nil {
		var contents []string
		for _, src := range agg.Sources {
			data, err := os.ReadFile(src)
			if err != nil {
				res.Warnings = append(res.Warnings, fmt.Sprintf("%s: skipped %s: %v", plan.Tool, filepath.Base(src), err))
				continue
			}
			contents = append(contents, string(data))
		}
		if len(contents) == 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: no readable templates, %s not written", plan.Tool, agg.Path))
			return res
		}

		out := RenderAggregate(agg.Header, contents)
		if err := platform.WriteFileAtomic(filepath.Join(projectDir, agg.Path), []byte(out), 0644); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: writing %s: %v", plan.Tool, agg.Path, err))
			return res
		}
		res.Created = append(res.Created, filepath.ToSlash(agg.Path))
	}

	return res
}
