package registry

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pluto-labs/pluto/internal/logging"
)

// Discover walks root and returns every file whose extension is in
// extensions. Matching is case-insensitive. A missing or unreadable root
// yields an empty result: discovery is advisory and never fails an install.
// Results are sorted by subdirectory, basename, then extension.
func Discover(root string, extensions []string) []ContentItem {
	logger := logging.Get("registry")

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		logger.Debug().Str("root", root).Msg("template root not found, nothing to discover")
		return nil
	}

	accepted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		accepted[strings.ToLower(ext)] = true
	}

	var items []ContentItem
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Debug().Err(err).Str("path", path).Msg("skipping unreadable entry")
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		if base == "" || !accepted[strings.ToLower(ext)] {
			return nil
		}

		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}

		items = append(items, ContentItem{
			SourcePath:   abs,
			Basename:     base,
			Extension:    ext,
			Subdirectory: normalizeSubdir(rel),
		})
		return nil
	})

	sortItems(items)
	return items
}

// PreferExtensions drops duplicates that share a subdirectory and basename
// but differ in extension, keeping the one listed earliest in order.
// Extensions missing from order rank last.
func PreferExtensions(items []ContentItem, order []string) []ContentItem {
	rank := func(ext string) int {
		for i, o := range order {
			if strings.EqualFold(o, ext) {
				return i
			}
		}
		return len(order)
	}

	best := make(map[string]ContentItem)
	for _, it := range items {
		key := it.Subdirectory + "\x00" + it.Basename
		cur, ok := best[key]
		if !ok || rank(it.Extension) < rank(cur.Extension) ||
			(rank(it.Extension) == rank(cur.Extension) && it.Extension < cur.Extension) {
			best[key] = it
		}
	}

	out := make([]ContentItem, 0, len(best))
	for _, it := range best {
		out = append(out, it)
	}
	sortItems(out)
	return out
}

// normalizeSubdir maps the walk-relative directory to the stored form:
// forward slashes, and "" instead of "." for the root level.
func normalizeSubdir(rel string) string {
	if rel == "." || rel == "" {
		return ""
	}
	return filepath.ToSlash(rel)
}

func sortItems(items []ContentItem) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Subdirectory != b.Subdirectory {
			return a.Subdirectory < b.Subdirectory
		}
		if a.Basename != b.Basename {
			return a.Basename < b.Basename
		}
		return a.Extension < b.Extension
	})
}
