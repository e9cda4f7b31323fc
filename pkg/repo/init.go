package repo

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/loki9919/MyGit/pkg/fsys"
)

var ErrNotARepository = errors.New("not a mygit repository")

// Init creates a new repository in the root of files: the .mygit/ directory
// with objects/, refs/heads/, refs/tags/ and a config file. HEAD is left
// unset until the first commit or branch switch writes it. A nil cfg selects
// DefaultConfig. Returns an error if a .mygit/ directory already exists.
func Init(files fsys.FS, cfg *Config) (*Repo, error) {
	if fsys.Exists(files, DirName) {
		return nil, fmt.Errorf("init: repository already exists at %s", DirName)
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	dirs := []string{
		fsys.Join(DirName, "objects"),
		fsys.Join(DirName, "refs", "heads"),
		fsys.Join(DirName, "refs", "tags"),
	}
	for _, d := range dirs {
		if err := files.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}
	if err := writeConfig(files, DirName, cfg); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	return newRepo(files, cfg)
}

// InitDir creates a repository in the OS directory path.
func InitDir(path string, cfg *Config) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("init: abs path: %w", err)
	}
	r, err := Init(fsys.NewOSFS(abs), cfg)
	if err != nil {
		return nil, err
	}
	r.RootDir = abs
	return r, nil
}

// Open opens the repository whose control directory sits at the root of
// files.
func Open(files fsys.FS) (*Repo, error) {
	if !fsys.IsDir(files, DirName) {
		return nil, fmt.Errorf("open: %w", ErrNotARepository)
	}
	cfg, err := readConfig(files, DirName)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	return newRepo(files, cfg)
}

// Discover searches upward from path for a .mygit/ directory and opens the
// repository found there.
func Discover(path string) (*Repo, error) {
	// Resolve to absolute path for consistent traversal.
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		root := fsys.NewOSFS(cur)
		if fsys.IsDir(root, DirName) {
			r, err := Open(root)
			if err != nil {
				return nil, err
			}
			r.RootDir = cur
			return r, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("open: %w (or any parent up to /)", ErrNotARepository)
		}
		cur = parent
	}
}
