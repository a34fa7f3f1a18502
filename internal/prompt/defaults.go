package prompt

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed defaults
var defaultPrompts embed.FS

// EnsureLayout writes the default category tree under root, creating
// any prompt file that is missing. Existing files are left alone so
// local edits survive.
func EnsureLayout(root string) error {
	return fs.WalkDir(defaultPrompts, "defaults", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel("defaults", path)
		if err != nil {
			return err
		}
		target := filepath.Join(root, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		if _, err := os.Stat(target); err == nil {
			return nil
		}

		data, err := defaultPrompts.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
}
