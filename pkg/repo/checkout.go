package repo

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/loki9919/MyGit/pkg/fsys"
	"github.com/loki9919/MyGit/pkg/object"
)

var ErrWriteConflict = errors.New("checkout write conflict")

// ReadTree replaces the work tree with the content of tree h.
//
// Algorithm:
//  1. Flatten the target tree and check that every blob is present, so a
//     broken tree fails before anything is removed.
//  2. Empty the work tree bottom-up, leaving ignored paths alone. A
//     directory that stays non-empty because of them is kept.
//  3. Write every blob to its path, creating directories as needed.
//
// There is no rollback: a failure in step 3 leaves the work tree partially
// replaced.
func (r *Repo) ReadTree(h object.Hash) error {
	files, err := r.GetTree(h, "")
	if err != nil {
		return fmt.Errorf("read tree: %w", err)
	}
	paths := make([]string, 0, len(files))
	for p, blob := range files {
		if !r.Store.Has(blob) {
			return fmt.Errorf("read tree: blob %s for %q: %w", blob, p, object.ErrNotFound)
		}
		paths = append(paths, p)
	}
	sort.Strings(paths)

	ic := r.NewIgnoreChecker()
	if err := r.emptyDir(ic, "."); err != nil {
		return fmt.Errorf("read tree: %w", err)
	}

	for _, p := range paths {
		data, err := r.Store.ReadBlob(files[p])
		if err != nil {
			return fmt.Errorf("read tree: blob for %q: %w", p, err)
		}
		if err := r.writeWorkFile(p, data); err != nil {
			return fmt.Errorf("read tree: %w", err)
		}
	}
	return nil
}

// emptyDir removes every non-ignored file below dir, then every directory
// that became empty.
func (r *Repo) emptyDir(ic *IgnoreChecker, dir string) error {
	entries, err := r.FS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("clear %q: %w", dir, err)
	}
	for _, e := range entries {
		p := fsys.Join(dir, e.Name())
		if ic.IsIgnored(p, e.IsDir()) {
			continue
		}
		if !e.IsDir() {
			if err := r.FS.Remove(p); err != nil {
				return fmt.Errorf("clear %q: %w", p, err)
			}
			continue
		}

		if err := r.emptyDir(ic, p); err != nil {
			return err
		}
		if err := r.FS.Remove(p); err != nil && !errors.Is(err, fsys.ErrNotEmpty) {
			return fmt.Errorf("clear %q: %w", p, err)
		}
	}
	return nil
}

func (r *Repo) writeWorkFile(p string, data []byte) error {
	if dir := path.Dir(p); dir != "." {
		if err := r.FS.MkdirAll(dir, 0o755); err != nil {
			if blocker := r.fileInPath(dir); blocker != "" {
				return fmt.Errorf("mkdir %q: %w: %q is a file", dir, ErrWriteConflict, blocker)
			}
			return fmt.Errorf("mkdir %q: %w", dir, err)
		}
	}
	if fsys.IsDir(r.FS, p) {
		return fmt.Errorf("write %q: %w: directory in the way", p, ErrWriteConflict)
	}
	if err := r.FS.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", p, err)
	}
	return nil
}

// fileInPath returns the first ancestor-or-self of dir that exists and is
// not a directory.
func (r *Repo) fileInPath(dir string) string {
	cur := ""
	for _, seg := range strings.Split(dir, "/") {
		cur = path.Join(cur, seg)
		info, err := r.FS.Lstat(cur)
		if err != nil {
			return ""
		}
		if !info.IsDir() {
			return cur
		}
	}
	return ""
}

// Checkout replaces the work tree with the tree of commit h and points HEAD
// directly at h (detached).
func (r *Repo) Checkout(h object.Hash) error {
	if err := r.checkoutCommit(h); err != nil {
		return err
	}
	if err := r.updateRef(HEAD, Direct(h), false, "checkout: moving to "+string(h)); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	return nil
}

// SwitchBranch checks out the commit of branch name and makes HEAD a
// symbolic ref to it, so later commits advance the branch.
func (r *Repo) SwitchBranch(name string) error {
	refName := branchesPrefix + name
	ref, err := r.GetRef(refName, true)
	if err != nil {
		return fmt.Errorf("switch branch: %w", err)
	}
	if ref.IsUnset() {
		return fmt.Errorf("switch branch: branch %q does not exist", name)
	}
	if err := r.checkoutCommit(ref.Hash()); err != nil {
		return err
	}
	if err := r.UpdateRef(HEAD, Symbolic(refName), false); err != nil {
		return fmt.Errorf("switch branch: %w", err)
	}
	return nil
}

func (r *Repo) checkoutCommit(h object.Hash) error {
	c, err := r.GetCommit(h)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	if err := r.ReadTree(c.TreeHash); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	return nil
}
