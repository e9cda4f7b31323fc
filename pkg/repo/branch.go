package repo

import (
	"fmt"
	"strings"

	"github.com/loki9919/MyGit/pkg/object"
)

// CreateBranch creates a new branch pointing at the given target hash.
// It writes the hash to .mygit/refs/heads/<name>. Returns an error if the
// branch already exists.
func (r *Repo) CreateBranch(name string, target object.Hash) error {
	if err := r.createRef(branchesPrefix+name, target, "branch: created"); err != nil {
		return fmt.Errorf("create branch %q: %w", name, err)
	}
	return nil
}

// createRef writes a new direct ref, refusing to overwrite an existing one.
// The target must be present in the store.
func (r *Repo) createRef(refName string, target object.Hash, reason string) error {
	if err := ValidateRefName(refName); err != nil {
		return err
	}
	if !r.Store.Has(target) {
		return fmt.Errorf("target %s: %w", target, object.ErrNotFound)
	}
	existing, err := r.readRef(refName)
	if err != nil {
		return err
	}
	if !existing.IsUnset() {
		return fmt.Errorf("%w: %s", ErrRefExists, refName)
	}
	return r.updateRef(refName, Direct(target), false, reason)
}

// DeleteBranch removes the branch ref .mygit/refs/heads/<name>.
// Returns an error if the branch is the current branch or does not exist.
func (r *Repo) DeleteBranch(name string) error {
	current, err := r.CurrentBranch()
	if err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	if current == name {
		return fmt.Errorf("delete branch: cannot delete current branch %q", name)
	}
	if err := r.DeleteRef(branchesPrefix + name); err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	return nil
}

// ListBranches returns the branch names sorted alphabetically.
func (r *Repo) ListBranches() ([]string, error) {
	return r.listRefNames(branchesPrefix)
}

func (r *Repo) listRefNames(prefix string) ([]string, error) {
	var names []string
	for ref, err := range r.IterRefs(prefix, false) {
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", prefix, err)
		}
		names = append(names, strings.TrimPrefix(ref.Name, prefix))
	}
	return names, nil
}

// CurrentBranch reads HEAD and returns the branch name if HEAD is a symbolic
// ref (e.g. "ref: refs/heads/main" → "main"). If HEAD is detached or unset,
// it returns "".
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.GetRef(HEAD, false)
	if err != nil {
		return "", fmt.Errorf("current branch: %w", err)
	}
	if head.Symbolic && strings.HasPrefix(head.Value, branchesPrefix) {
		return strings.TrimPrefix(head.Value, branchesPrefix), nil
	}
	return "", nil
}
