package repo

import (
	"fmt"
	"strings"

	"github.com/loki9919/MyGit/pkg/object"
)

// TreeEntryAtPath walks tree treeHash along the slash-separated relPath and
// returns the entry found there. The boolean is false when a component is
// missing or a non-final component is not a tree.
func (r *Repo) TreeEntryAtPath(treeHash object.Hash, relPath string) (object.TreeEntry, bool, error) {
	parts := strings.Split(strings.Trim(relPath, "/"), "/")
	current := treeHash

	for i, part := range parts {
		var next *object.TreeEntry
		for e, err := range r.IterTreeEntries(current) {
			if err != nil {
				return object.TreeEntry{}, false, err
			}
			if e.Name == part {
				next = &e
				break
			}
		}
		if next == nil {
			return object.TreeEntry{}, false, nil
		}
		if i == len(parts)-1 {
			return *next, true, nil
		}
		if next.Type != object.TypeTree {
			return object.TreeEntry{}, false, nil
		}
		current = next.Hash
	}

	return object.TreeEntry{}, false, nil
}

// resolvePath resolves "<name>:<path>": name must designate a commit or a
// tree, and path is looked up inside it. An empty path designates the tree
// itself.
func (r *Repo) resolvePath(arg string) (object.Hash, error) {
	name, relPath, _ := strings.Cut(arg, ":")
	if name == "" {
		name = "@"
	}
	h, err := r.GetOID(name)
	if err != nil {
		return "", err
	}

	typ, _, err := r.Store.Get(h, "")
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", arg, err)
	}
	treeHash := h
	switch typ {
	case object.TypeCommit:
		c, err := r.GetCommit(h)
		if err != nil {
			return "", err
		}
		treeHash = c.TreeHash
	case object.TypeTree:
	default:
		return "", fmt.Errorf("resolve %q: %w: %s is a %s", arg, object.ErrTypeMismatch, h, typ)
	}

	if strings.Trim(relPath, "/") == "" {
		return treeHash, nil
	}
	entry, found, err := r.TreeEntryAtPath(treeHash, relPath)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", arg, err)
	}
	if !found {
		return "", fmt.Errorf("resolve %q: path not in tree: %w", arg, ErrUnknownName)
	}
	return entry.Hash, nil
}
