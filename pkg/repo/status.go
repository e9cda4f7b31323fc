package repo

import (
	"fmt"
	"sort"

	"github.com/loki9919/MyGit/pkg/fsys"
	"github.com/loki9919/MyGit/pkg/object"
)

// FileStatus is the state of a work tree path relative to the HEAD tree.
type FileStatus int

const (
	StatusClean    FileStatus = iota // same content as in HEAD
	StatusNew                        // on disk, not in HEAD
	StatusModified                   // on disk and in HEAD, content differs
	StatusDeleted                    // in HEAD, missing on disk
)

func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusDeleted:
		return "deleted"
	default:
		return "clean"
	}
}

// StatusEntry records the status of a single file.
type StatusEntry struct {
	Path   string // slash-separated, relative to the work tree root
	Status FileStatus
}

// Status compares the work tree against the tree of the commit HEAD
// resolves to. Clean paths are omitted. With no commit yet every
// non-ignored file is new.
//
// Algorithm:
//  1. Flatten the HEAD tree (if any).
//  2. Walk the work tree, skipping ignored paths, and hash every regular
//     file without storing it.
//  3. Compare both mappings by blob hash.
//  4. Return entries sorted by path.
func (r *Repo) Status() ([]StatusEntry, error) {
	head := map[string]object.Hash{}
	ref, err := r.GetRef(HEAD, true)
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	if h := ref.Hash(); h != "" {
		c, err := r.GetCommit(h)
		if err != nil {
			return nil, fmt.Errorf("status: %w", err)
		}
		if head, err = r.GetTree(c.TreeHash, ""); err != nil {
			return nil, fmt.Errorf("status: %w", err)
		}
	}

	work := make(map[string]object.Hash)
	if err := r.hashWorkTree(r.NewIgnoreChecker(), ".", work); err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	var entries []StatusEntry
	for p, h := range work {
		old, tracked := head[p]
		switch {
		case !tracked:
			entries = append(entries, StatusEntry{Path: p, Status: StatusNew})
		case old != h:
			entries = append(entries, StatusEntry{Path: p, Status: StatusModified})
		}
	}
	for p := range head {
		if _, ok := work[p]; !ok {
			entries = append(entries, StatusEntry{Path: p, Status: StatusDeleted})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// hashWorkTree records the blob hash every non-ignored regular file below
// dir would get.
func (r *Repo) hashWorkTree(ic *IgnoreChecker, dir string, out map[string]object.Hash) error {
	entries, err := r.FS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("walk %q: %w", dir, err)
	}
	alg := r.Store.Algorithm()
	for _, e := range entries {
		p := fsys.Join(dir, e.Name())
		if ic.IsIgnored(p, e.IsDir()) {
			continue
		}
		if e.IsDir() {
			if err := r.hashWorkTree(ic, p, out); err != nil {
				return err
			}
			continue
		}
		if !e.Type().IsRegular() {
			continue
		}
		data, err := r.FS.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %q: %w", p, err)
		}
		h, err := object.HashObject(alg, object.TypeBlob, data)
		if err != nil {
			return err
		}
		out[p] = h
	}
	return nil
}
