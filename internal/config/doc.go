// Package config manages user-level settings stored at ~/.pluto/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the template repository the update command clones and the local template
// directory used by init.
package config
