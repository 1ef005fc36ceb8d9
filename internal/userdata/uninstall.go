package userdata

import (
	"fmt"
	"os"

	"github.com/pluto-labs/pluto/internal/logging"
	"github.com/pluto-labs/pluto/internal/platform"
)

// RemovalResult lists what RemoveInstall deleted.
type RemovalResult struct {
	Root      string
	Removed   bool
	Launchers []string
	Warnings  []string
}

// RemoveInstall deletes launcher symlinks that point into root and then
// root itself. Launchers pointing elsewhere are left alone. A missing root
// is not an error.
func RemoveInstall(root string, launchers []string) (*RemovalResult, error) {
	logger := logging.Get("userdata")
	res := &RemovalResult{Root: root}

	for _, link := range launchers {
		if !platform.LinksInto(link, root) {
			continue
		}
		if err := platform.RemoveSymlink(link); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("removing launcher %s: %v", link, err))
			continue
		}
		res.Launchers = append(res.Launchers, link)
		logger.Info().Str("link", link).Msg("launcher removed")
	}

	if _, err := os.Stat(root); err == nil {
		if err := os.RemoveAll(root); err != nil {
			return res, fmt.Errorf("removing %s: %w", root, err)
		}
		res.Removed = true
	}
	return res, nil
}
