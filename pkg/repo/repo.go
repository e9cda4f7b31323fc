package repo

import (
	"time"

	"github.com/loki9919/MyGit/pkg/fsys"
	"github.com/loki9919/MyGit/pkg/object"
)

// DirName is the control directory holding objects, refs and config. It is
// never part of a snapshot and never touched by checkout.
const DirName = ".mygit"

// Repo represents an opened MyGit repository. All paths handed to its
// methods are slash-separated and relative to the work tree root.
type Repo struct {
	FS      fsys.FS       // work tree, rooted at its top directory
	RootDir string        // OS path of the work tree; empty for in-memory repos
	GitDir  string        // control directory, relative to FS
	Store   *object.Store // content-addressed object store
	Config  *Config

	now func() time.Time
}

func newRepo(files fsys.FS, cfg *Config) (*Repo, error) {
	store, err := object.NewStore(files, DirName, cfg.storeOptions())
	if err != nil {
		return nil, err
	}
	return &Repo{
		FS:     files,
		GitDir: DirName,
		Store:  store,
		Config: cfg,
		now:    time.Now,
	}, nil
}

// Close releases resources held by the object store.
func (r *Repo) Close() error {
	return r.Store.Close()
}

func (r *Repo) gitPath(elem ...string) string {
	return fsys.Join(append([]string{r.GitDir}, elem...)...)
}
