// Package manifest persists the per-project install record at
// .pluto/config.json. The record lists the selected tools and content, the
// commit mode, and the exact files and allow-list entries an install
// created, so a later install or uninstall can undo precisely that.
//
// Loaded manifests are validated against an embedded JSON schema and their
// version must satisfy the supported major version.
package manifest
