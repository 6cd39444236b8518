// Package repo discovers Zuul repositories, their config files and roles
// on disk.
package repo

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ZuulDir is the directory that marks a repository root.
const ZuulDir = "zuul.d"

const extraDirSuffix = "zuul-extra.d"

// ExpandPath expands a leading ~ and environment variables and returns
// a cleaned absolute path.
func ExpandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	p = os.ExpandEnv(p)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// RepoRoot returns the repository root of path: the directory holding
// the zuul.d (or *zuul-extra.d) directory the path lives in, or the
// nearest ancestor that contains a zuul.d directory.
func RepoRoot(path string) (string, bool) {
	path = ExpandPath(path)

	parts := strings.Split(path, string(filepath.Separator))
	for i, part := range parts {
		if part == ZuulDir || strings.HasSuffix(part, extraDirSuffix) {
			root := strings.Join(parts[:i], string(filepath.Separator))
			if root == "" {
				root = string(filepath.Separator)
			}
			return root, true
		}
	}

	for dir := path; ; {
		if isDir(filepath.Join(dir, ZuulDir)) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// FindRepoDirs walks each base directory and returns every directory
// that contains a zuul.d directory. The walk does not descend into a
// repository once found.
func FindRepoDirs(bases []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, base := range bases {
		for _, dir := range traverse(base, ZuulDir) {
			if !seen[dir] {
				seen[dir] = true
				dirs = append(dirs, dir)
			}
		}
	}
	return dirs
}

// traverse returns dir if it has a child named marker, otherwise
// recurses into visitable subdirectories.
func traverse(dir, marker string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	if isDir(filepath.Join(dir, marker)) {
		return []string{dir}
	}

	var xs []string
	for _, e := range entries {
		if e.IsDir() && shouldVisit(e.Name()) {
			xs = append(xs, traverse(filepath.Join(dir, e.Name()), marker)...)
		}
	}
	return xs
}

func shouldVisit(name string) bool {
	for _, prefix := range []string{".", "node_modules", "__pycache__"} {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	return true
}

// ZuulYAMLPaths lists the YAML files of every repository's zuul.d and
// *zuul-extra.d directories.
func ZuulYAMLPaths(repoDirs []string) []string {
	var paths []string
	for _, repoDir := range repoDirs {
		configDirs := []string{filepath.Join(repoDir, ZuulDir)}
		entries, _ := os.ReadDir(repoDir)
		for _, e := range entries {
			if e.IsDir() && strings.HasSuffix(e.Name(), extraDirSuffix) {
				configDirs = append(configDirs, filepath.Join(repoDir, e.Name()))
			}
		}

		for _, dir := range configDirs {
			_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return nil
				}
				if !d.IsDir() && IsYAML(path) {
					paths = append(paths, path)
				}
				return nil
			})
		}
	}
	return paths
}

// IsYAML reports whether path has a YAML extension.
func IsYAML(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}

// ShortenPath renders path relative to the current directory with a ./
// prefix when it lives below it.
func ShortenPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if path == wd {
		return "."
	}
	if rel, ok := strings.CutPrefix(path, wd+string(filepath.Separator)); ok {
		return "." + string(filepath.Separator) + rel
	}
	return path
}

// IsUnder reports whether path equals dir or lives below it.
func IsUnder(path, dir string) bool {
	if path == dir {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(dir, string(filepath.Separator))+string(filepath.Separator))
}

// FirstExisting returns the first candidate that is a regular file.
func FirstExisting(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.Mode().IsRegular() {
			return c, true
		}
	}
	return "", false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
