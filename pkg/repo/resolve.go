package repo

import (
	"errors"
	"fmt"

	"github.com/loki9919/MyGit/pkg/object"
)

var ErrUnknownName = errors.New("unknown name")

// GetOID maps a user-supplied name to an object hash. "@" stands for HEAD.
// The name is tried as a ref in this order, and the first one holding a
// non-empty value wins:
//
//	<name>, refs/<name>, refs/tags/<name>, refs/heads/<name>
//
// Failing that, a name of hash length made only of hex digits is returned
// unchanged.
func (r *Repo) GetOID(name string) (object.Hash, error) {
	if name == "@" {
		name = HEAD
	}

	candidates := []string{
		name,
		refsPrefix + name,
		tagsPrefix + name,
		branchesPrefix + name,
	}
	for _, candidate := range candidates {
		if ValidateRefName(candidate) != nil {
			continue
		}
		ref, err := r.GetRef(candidate, true)
		if err != nil {
			return "", fmt.Errorf("resolve %q: %w", name, err)
		}
		if h := ref.Hash(); h != "" {
			return h, nil
		}
	}

	if object.LooksLikeHash(name) {
		return object.Hash(name), nil
	}
	return "", fmt.Errorf("resolve %q: %w", name, ErrUnknownName)
}
