package registry

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// rootToken names the top-level directory in collision suffixes.
const rootToken = "root"

// ResolveDestinations assigns each item a destination filename.
//
// Items whose basename is unique keep {basename}{ext}. When several items
// share a basename, every one of them becomes {basename}-{subdir}{ext}, with
// path separators in subdir replaced by "-" and the top level written as
// "root". A non-empty ext replaces each item's own extension.
//
// The suffix depends only on the item itself, so the result is the same for
// any ordering of items. Output is sorted by DestFilename.
func ResolveDestinations(items []ContentItem, ext string) []ResolvedDestination {
	groups := make(map[string][]ContentItem)
	for _, it := range items {
		groups[it.Basename] = append(groups[it.Basename], it)
	}

	out := make([]ResolvedDestination, 0, len(items))
	for name, group := range groups {
		for _, it := range group {
			e := ext
			if e == "" {
				e = it.Extension
			}
			dest := name + e
			if len(group) > 1 {
				dest = name + "-" + subdirToken(it.Subdirectory) + e
			}
			out = append(out, ResolvedDestination{
				DestFilename: dest,
				OriginalName: name,
				Subdirectory: it.Subdirectory,
				Item:         it,
			})
		}
	}

	sortDestinations(out)
	return disambiguate(out)
}

// Select keeps destinations whose stem or original name appears in
// selection. Selecting by original name picks every variant of that name
// when a collision was resolved; selecting by stem picks exactly one.
func Select(dests []ResolvedDestination, selection []string) []ResolvedDestination {
	want := make(map[string]bool, len(selection))
	for _, s := range selection {
		want[s] = true
	}

	var out []ResolvedDestination
	for _, d := range dests {
		if want[d.Stem()] || want[d.OriginalName] {
			out = append(out, d)
		}
	}
	return out
}

// Identifiers returns the sorted, unique stems of dests. These are the
// names offered to users for selection.
func Identifiers(dests []ResolvedDestination) []string {
	seen := make(map[string]bool, len(dests))
	var ids []string
	for _, d := range dests {
		stem := d.Stem()
		if !seen[stem] {
			seen[stem] = true
			ids = append(ids, stem)
		}
	}
	sort.Strings(ids)
	return ids
}

// subdirToken turns a subdirectory into a filename-safe suffix.
func subdirToken(subdir string) string {
	if subdir == "" {
		return rootToken
	}
	return strings.NewReplacer("/", "-", "\\", "-").Replace(subdir)
}

// disambiguate keeps DestFilename unique when suffixing alone cannot, e.g.
// "x-y/a" and "x/y/a" both map to "a-x-y". Later duplicates in sort order
// get a numeric suffix. Input must already be sorted.
func disambiguate(dests []ResolvedDestination) []ResolvedDestination {
	used := make(map[string]bool, len(dests))
	for _, d := range dests {
		used[d.DestFilename] = true
	}

	seen := make(map[string]bool, len(dests))
	changed := false
	for i, d := range dests {
		if !seen[d.DestFilename] {
			seen[d.DestFilename] = true
			continue
		}
		ext := filepath.Ext(d.DestFilename)
		stem := strings.TrimSuffix(d.DestFilename, ext)
		for n := 2; ; n++ {
			candidate := fmt.Sprintf("%s-%d%s", stem, n, ext)
			if !used[candidate] {
				dests[i].DestFilename = candidate
				used[candidate] = true
				seen[candidate] = true
				break
			}
		}
		changed = true
	}

	if changed {
		sortDestinations(dests)
	}
	return dests
}

func sortDestinations(dests []ResolvedDestination) {
	sort.Slice(dests, func(i, j int) bool {
		a, b := dests[i], dests[j]
		if a.DestFilename != b.DestFilename {
			return a.DestFilename < b.DestFilename
		}
		if a.Subdirectory != b.Subdirectory {
			return a.Subdirectory < b.Subdirectory
		}
		if a.Item.Extension != b.Item.Extension {
			return a.Item.Extension < b.Item.Extension
		}
		// A collision suffix can reproduce a real basename ("a" in the root
		// and a file named "a-root").
		if a.Item.Basename != b.Item.Basename {
			return a.Item.Basename < b.Item.Basename
		}
		return a.Item.SourcePath < b.Item.SourcePath
	})
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
