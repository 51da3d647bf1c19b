package clean

import (
	"fmt"
	"os"
	"path/filepath"
)

// Cleaner removes stale build output directories. Removal is idempotent:
// a missing directory is success, and running the cleaner any number of
// times leaves the same end state (all directories absent).
type Cleaner struct {
	dirs []string
}

func NewCleaner(dirs ...string) *Cleaner {
	return &Cleaner{dirs: dirs}
}

// Clean removes each configured directory under root and returns the
// names of the ones that actually existed.
func (c *Cleaner) Clean(root string) ([]string, error) {
	var removed []string
	for _, d := range c.dirs {
		path := filepath.Join(root, d)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			return removed, fmt.Errorf("remove %s: %w", path, err)
		}
		removed = append(removed, d)
	}
	return removed, nil
}
