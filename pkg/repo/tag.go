package repo

import (
	"fmt"

	"github.com/loki9919/MyGit/pkg/object"
)

// CreateTag creates a lightweight tag ref under refs/tags/. Existing tags
// are not overwritten.
func (r *Repo) CreateTag(name string, target object.Hash) error {
	if err := r.createRef(tagsPrefix+name, target, "tag: created"); err != nil {
		return fmt.Errorf("create tag %q: %w", name, err)
	}
	return nil
}

// DeleteTag removes a tag ref from refs/tags/.
func (r *Repo) DeleteTag(name string) error {
	if err := r.DeleteRef(tagsPrefix + name); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

// ListTags lists tag names sorted alphabetically.
func (r *Repo) ListTags() ([]string, error) {
	return r.listRefNames(tagsPrefix)
}
