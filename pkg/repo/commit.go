package repo

import (
	"fmt"
	"iter"
	"strings"

	"github.com/loki9919/MyGit/pkg/object"
)

// LogEntry pairs a commit with its hash.
type LogEntry struct {
	Hash   object.Hash
	Commit *object.CommitObj
}

// Commit snapshots the work tree and advances HEAD (or the branch HEAD
// points at) to the new commit.
func (r *Repo) Commit(message string) (object.Hash, error) {
	return r.CommitTo(HEAD, message)
}

// CommitTo creates a commit whose parent is the current value of ref and
// then points ref at it.
//
//  1. Write the tree of the work tree root
//  2. Resolve ref to get the parent (absent for the first commit)
//  3. Write the commit object
//  4. Update ref, following symbolic indirection
func (r *Repo) CommitTo(ref, message string) (object.Hash, error) {
	treeHash, err := r.WriteTree(".")
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	parent, err := r.GetRef(ref, true)
	if err != nil {
		return "", fmt.Errorf("commit: resolve %s: %w", ref, err)
	}

	commitHash, err := r.Store.WriteCommit(&object.CommitObj{
		TreeHash: treeHash,
		Parent:   parent.Hash(),
		Message:  message,
	})
	if err != nil {
		return "", fmt.Errorf("commit: write commit: %w", err)
	}

	if err := r.updateRef(ref, Direct(commitHash), true, "commit: "+subject(message)); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return commitHash, nil
}

func subject(message string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	return line
}

// GetCommit reads and decodes commit h.
func (r *Repo) GetCommit(h object.Hash) (*object.CommitObj, error) {
	c, err := r.Store.ReadCommit(h)
	if err != nil {
		return nil, fmt.Errorf("get commit: %w", err)
	}
	return c, nil
}

// IterCommitsAndParents walks parent links breadth-first from starts,
// yielding every reachable commit hash exactly once in discovery order.
// Empty hashes are skipped. A commit that cannot be read ends the walk with
// an error.
func (r *Repo) IterCommitsAndParents(starts ...object.Hash) iter.Seq2[object.Hash, error] {
	return func(yield func(object.Hash, error) bool) {
		err := r.walkCommits(starts, func(h object.Hash) bool {
			return yield(h, nil)
		}, nil)
		if err != nil {
			yield("", fmt.Errorf("walk commits: %w", err))
		}
	}
}

// walkCommits is the breadth-first walk behind IterCommitsAndParents and
// Log. visit sees each new hash before its commit is read; read, when
// non-nil, receives the decoded commit. Either returning false stops the
// walk without error.
func (r *Repo) walkCommits(starts []object.Hash, visit func(object.Hash) bool, read func(object.Hash, *object.CommitObj) bool) error {
	queue := append([]object.Hash(nil), starts...)
	visited := make(map[object.Hash]struct{}, len(starts))

	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		if h == "" {
			continue
		}
		if _, ok := visited[h]; ok {
			continue
		}
		visited[h] = struct{}{}

		if !visit(h) {
			return nil
		}
		c, err := r.Store.ReadCommit(h)
		if err != nil {
			return err
		}
		if read != nil && !read(h, c) {
			return nil
		}
		queue = append(queue, c.Parent)
	}
	return nil
}

// Log returns up to limit commits reachable from start, newest first. A
// limit of zero or less means no limit.
func (r *Repo) Log(start object.Hash, limit int) ([]LogEntry, error) {
	var out []LogEntry
	err := r.walkCommits([]object.Hash{start}, func(object.Hash) bool {
		return limit <= 0 || len(out) < limit
	}, func(h object.Hash, c *object.CommitObj) bool {
		out = append(out, LogEntry{Hash: h, Commit: c})
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	return out, nil
}
