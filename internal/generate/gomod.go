package generate

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// importPathOf determines the import path of the package in dir by locating
// the enclosing go.mod. It returns the empty string when dir is outside any
// module.
func importPathOf(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	modPath, rootDir, err := findModule(abs)
	if err != nil || modPath == "" {
		return "", err
	}
	rel, err := filepath.Rel(rootDir, abs)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return modPath, nil
	}
	return path.Join(modPath, filepath.ToSlash(rel)), nil
}

// findModule walks up from dir looking for a go.mod file and returns the
// module path it declares along with the directory holding it. Both results
// are empty when dir is outside any module.
func findModule(dir string) (string, string, error) {
	for {
		name := filepath.Join(dir, "go.mod")
		data, err := os.ReadFile(name)
		if err == nil {
			f, err := modfile.Parse(name, data, nil)
			if err != nil {
				return "", "", fmt.Errorf("parsing %s: %w", name, err)
			}
			if f.Module == nil {
				return "", "", fmt.Errorf("%s: missing module declaration", name)
			}
			return f.Module.Mod.Path, dir, nil
		}
		if !os.IsNotExist(err) {
			return "", "", fmt.Errorf("reading %s: %w", name, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", nil
		}
		dir = parent
	}
}
