// Package registry discovers installable content in a template tree. It walks
// a template root for files with accepted extensions, resolves basename
// collisions across subdirectories into stable destination filenames, and
// filters the result by the identifiers a user selected.
package registry
