// Package cli defines the Cobra command tree for the pluto CLI. Each file
// registers one top-level command with the root command. Commands resolve
// flags and prompts into options and delegate the work to the internal
// packages; they only handle I/O formatting and user interaction.
package cli
