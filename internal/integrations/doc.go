// Package integrations describes the AI coding tools Pluto can provision:
// where each one reads instruction files from, whether it takes one file per
// command or a single aggregate document, and where its machine-readable
// settings live.
package integrations
