// Package platform provides the filesystem operations the installer relies
// on: atomic whole-file writes, byte copies, removal that tolerates absence,
// permission changes and symlink inspection. On Windows, chmod is a no-op and
// launcher links may be copies with a .target sidecar.
package platform
