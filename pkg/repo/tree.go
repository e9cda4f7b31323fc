package repo

import (
	"fmt"
	"iter"
	"path"

	"github.com/loki9919/MyGit/pkg/fsys"
	"github.com/loki9919/MyGit/pkg/object"
)

// WriteTree snapshots the work tree directory dir (relative to the root):
// every regular file becomes a blob, every subdirectory a subtree, and the
// resulting tree objects are written to the store. Ignored paths, symbolic
// links and other special files are skipped.
func (r *Repo) WriteTree(dir string) (object.Hash, error) {
	return r.writeTreeDir(r.NewIgnoreChecker(), fsys.Clean(dir))
}

func (r *Repo) writeTreeDir(ic *IgnoreChecker, dir string) (object.Hash, error) {
	entries, err := r.FS.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("write tree %q: %w", dir, err)
	}

	tree := &object.TreeObj{}
	for _, e := range entries {
		p := fsys.Join(dir, e.Name())
		switch {
		case e.IsDir():
			if ic.IsIgnored(p, true) {
				continue
			}
			h, err := r.writeTreeDir(ic, p)
			if err != nil {
				return "", err
			}
			tree.Entries = append(tree.Entries, object.TreeEntry{Type: object.TypeTree, Hash: h, Name: e.Name()})
		case e.Type().IsRegular():
			if ic.IsIgnored(p, false) {
				continue
			}
			data, err := r.FS.ReadFile(p)
			if err != nil {
				return "", fmt.Errorf("write tree: read %q: %w", p, err)
			}
			h, err := r.Store.Put(object.TypeBlob, data)
			if err != nil {
				return "", fmt.Errorf("write tree: blob %q: %w", p, err)
			}
			tree.Entries = append(tree.Entries, object.TreeEntry{Type: object.TypeBlob, Hash: h, Name: e.Name()})
		}
	}

	h, err := r.Store.WriteTree(tree)
	if err != nil {
		return "", fmt.Errorf("write tree %q: %w", dir, err)
	}
	return h, nil
}

// IterTreeEntries lazily yields the entries of one tree level. An empty
// hash yields nothing.
func (r *Repo) IterTreeEntries(h object.Hash) iter.Seq2[object.TreeEntry, error] {
	return func(yield func(object.TreeEntry, error) bool) {
		if h == "" {
			return
		}
		tree, err := r.Store.ReadTree(h)
		if err != nil {
			yield(object.TreeEntry{}, fmt.Errorf("read tree %s: %w", h, err))
			return
		}
		for _, e := range tree.Entries {
			if !yield(e, nil) {
				return
			}
		}
	}
}

// GetTree flattens tree h into a map from slash-separated path (prefixed by
// basePath) to blob hash. Entries that would land in the control directory
// are dropped.
func (r *Repo) GetTree(h object.Hash, basePath string) (map[string]object.Hash, error) {
	out := make(map[string]object.Hash)
	if err := r.flattenTree(h, basePath, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) flattenTree(h object.Hash, prefix string, out map[string]object.Hash) error {
	for e, err := range r.IterTreeEntries(h) {
		if err != nil {
			return fmt.Errorf("flatten tree: %w", err)
		}
		// The codec already rejects these; a tree built by hand must not
		// escape its directory either.
		if err := object.ValidateEntryName(e.Name); err != nil {
			return fmt.Errorf("flatten tree %s: %w: %v", h, object.ErrMalformedTree, err)
		}
		fullPath := e.Name
		if prefix != "" {
			fullPath = path.Join(prefix, e.Name)
		}
		if IsIgnored(fullPath) {
			continue
		}

		switch e.Type {
		case object.TypeBlob:
			out[fullPath] = e.Hash
		case object.TypeTree:
			if err := r.flattenTree(e.Hash, fullPath, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("flatten tree %s: %w: entry %q has type %q", h, object.ErrMalformedTree, e.Name, e.Type)
		}
	}
	return nil
}
