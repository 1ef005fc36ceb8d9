// Package settings patches an AI tool's JSON settings file in place. The file
// belongs to the user: only hook registrations and allow-list entries this
// tool can positively identify are ever added or removed, and every other key
// is carried through untouched.
package settings
