package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pluto-labs/pluto/internal/logging"
	"github.com/pluto-labs/pluto/internal/platform"
)

// Document is a decoded settings file. Values are whatever encoding/json
// produces for an arbitrary object: map[string]any, []any, string,
// json.Number, bool and nil. Numbers stay json.Number so they are written
// back exactly as read.
type Document map[string]any

// Load reads a settings file. A missing, unreadable, unparsable or
// non-object file yields an empty Document.
func Load(path string) Document {
	logger := logging.Get("settings")

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Debug().Err(err).Str("path", path).Msg("settings unreadable, starting from defaults")
		}
		return Document{}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}
	}

	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil || doc == nil {
		logger.Debug().Err(err).Str("path", path).Msg("settings unparsable, starting from defaults")
		return Document{}
	}
	return doc
}

// Save writes doc as two-space indented JSON with a trailing newline,
// creating parent directories. The write goes through a temp file and a
// rename so readers never see a partial document.
func Save(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	data = append(data, '\n')
	return platform.WriteFileAtomic(path, data, 0644)
}

// EnsureObject returns the object stored at key, creating it when the key is
// absent. A key holding a non-object is replaced: the caller asked for an
// object there and a scalar cannot be merged into.
func EnsureObject(parent map[string]any, key string) map[string]any {
	if obj, ok := parent[key].(map[string]any); ok {
		return obj
	}
	obj := map[string]any{}
	parent[key] = obj
	return obj
}

// EnsureArray returns the array stored at key, creating an empty one when
// the key is absent or holds something else.
func EnsureArray(parent map[string]any, key string) []any {
	if arr, ok := parent[key].([]any); ok {
		return arr
	}
	arr := []any{}
	parent[key] = arr
	return arr
}

// AppendUnique appends value to the array at parent[key] unless some
// element satisfies exists. It reports whether it appended.
func AppendUnique(parent map[string]any, key string, value any, exists func(any) bool) bool {
	arr := EnsureArray(parent, key)
	for _, el := range arr {
		if exists(el) {
			return false
		}
	}
	parent[key] = append(arr, value)
	return true
}

// RemoveWhere drops elements of the array at parent[key] that match and
// returns how many were removed. A missing or non-array key removes nothing.
func RemoveWhere(parent map[string]any, key string, match func(any) bool) int {
	arr, ok := parent[key].([]any)
	if !ok {
		return 0
	}
	kept := make([]any, 0, len(arr))
	for _, el := range arr {
		if !match(el) {
			kept = append(kept, el)
		}
	}
	removed := len(arr) - len(kept)
	if removed > 0 {
		parent[key] = kept
	}
	return removed
}

// PruneEmpty deletes parent[key] when it holds an empty object or array and
// reports whether it did.
func PruneEmpty(parent map[string]any, key string) bool {
	switch v := parent[key].(type) {
	case map[string]any:
		if len(v) == 0 {
			delete(parent, key)
			return true
		}
	case []any:
		if len(v) == 0 {
			delete(parent, key)
			return true
		}
	}
	return false
}
