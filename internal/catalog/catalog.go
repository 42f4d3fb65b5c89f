// Package catalog discovers database files in a data directory.
package catalog

import (
	"os"
	"sort"
	"strings"

	"github.com/magitools/mpm/pkg/types"
)

// List returns the base names of every database file in dir, sorted
// lexicographically. A database file is any regular file carrying the
// mpm suffix; the suffix is stripped from the returned names. A missing
// or empty directory yields an empty list, not an error, so "nothing
// here yet" stays a normal state.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, types.FileSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, types.FileSuffix))
	}

	sort.Strings(names)
	return names, nil
}
