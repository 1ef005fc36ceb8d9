// Package linker turns a tool selection and a content selection into files
// in a project. Plan decides which templates land where for one tool (one
// file each for fan-out tools, a single concatenated document for aggregate
// tools) and Apply writes them. Installer runs the whole install: undo the
// previous one, plan and apply per tool, copy hook scripts, patch settings
// and record everything in the manifest.
package linker
