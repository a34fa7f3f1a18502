package ingest

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var markdownExts = map[string]bool{
	".md":       true,
	".markdown": true,
}

// DiscoverFiles collects markdown files from the given directories.
// Missing directories are skipped and reported back to the caller
// rather than aborting the run.
func DiscoverFiles(dirs []string, recursive bool) (files []string, skipped []string, err error) {
	for _, dir := range dirs {
		info, statErr := os.Stat(dir)
		if statErr != nil || !info.IsDir() {
			skipped = append(skipped, dir)
			continue
		}

		if !recursive {
			entries, readErr := os.ReadDir(dir)
			if readErr != nil {
				return nil, nil, readErr
			}
			for _, e := range entries {
				if !e.IsDir() && markdownExts[strings.ToLower(filepath.Ext(e.Name()))] {
					files = append(files, filepath.Join(dir, e.Name()))
				}
			}
			continue
		}

		walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && markdownExts[strings.ToLower(filepath.Ext(path))] {
				files = append(files, path)
			}
			return nil
		})
		if walkErr != nil {
			return nil, nil, walkErr
		}
	}

	sort.Strings(files)
	return files, skipped, nil
}
