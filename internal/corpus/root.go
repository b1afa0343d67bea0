package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var archiveSuffixes = []string{".zip", ".tar", ".tgz", ".tar.gz", ".gz", ".bz2", ".xz"}

// checkRoot rejects roots that cannot be read as a plain directory. Archive
// paths, including paths that point inside an archive, are rejected by name
// before the filesystem is touched.
func checkRoot(root string) error {
	if strings.TrimSpace(root) == "" {
		return fmt.Errorf("%w: empty corpus root", ErrCorpusNotInstalled)
	}
	if archive, ok := archiveElement(root); ok {
		return fmt.Errorf("%w: %s is an archive; install the crubadan corpus locally first", ErrCorpusNotInstalled, archive)
	}
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", ErrCorpusNotInstalled, root)
		}
		return fmt.Errorf("stat corpus root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrCorpusNotInstalled, root)
	}
	return nil
}

func archiveElement(root string) (string, bool) {
	elements := strings.Split(filepath.ToSlash(filepath.Clean(root)), "/")
	for i, element := range elements {
		lower := strings.ToLower(element)
		for _, suffix := range archiveSuffixes {
			if strings.HasSuffix(lower, suffix) && len(lower) > len(suffix) {
				return strings.Join(elements[:i+1], "/"), true
			}
		}
	}
	return "", false
}

// listFiles returns the names of the non-directory entries directly under root,
// sorted by name.
func listFiles(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("list corpus root: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
