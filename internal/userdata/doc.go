// Package userdata resolves the machine-wide locations the CLI uses: the
// install root under the home directory, the template root and the launcher
// symlinks a system install places on PATH. It also removes that install.
package userdata
