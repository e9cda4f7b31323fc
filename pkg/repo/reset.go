package repo

import (
	"fmt"

	"github.com/loki9919/MyGit/pkg/object"
)

// Reset moves the ref HEAD ultimately points at (the current branch, or
// HEAD itself when detached) to commit h. The work tree is not touched.
func (r *Repo) Reset(h object.Hash) error {
	if _, err := r.GetCommit(h); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := r.updateRef(HEAD, Direct(h), true, "reset: moving to "+string(h)); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}
