package repo

import (
	"errors"
	"fmt"
	"iter"
	"path"
	"strings"

	"github.com/loki9919/MyGit/pkg/fsys"
	"github.com/loki9919/MyGit/pkg/object"
)

const (
	HEAD = "HEAD"

	refsPrefix     = "refs/"
	branchesPrefix = "refs/heads/"
	tagsPrefix     = "refs/tags/"

	symrefPrefix   = "ref: "
	maxSymrefDepth = 5
)

var (
	ErrInvalidRefName = errors.New("invalid ref name")
	ErrSymrefLoop     = errors.New("symbolic ref loop")
	ErrMalformedRef   = errors.New("malformed ref")
	ErrRefExists      = errors.New("ref already exists")
)

// RefValue is the content of a ref: either a direct object hash or, when
// Symbolic is set, the name of another ref. An empty Value means unset.
type RefValue struct {
	Symbolic bool
	Value    string
}

// Direct returns a RefValue pointing at an object.
func Direct(h object.Hash) RefValue {
	return RefValue{Value: string(h)}
}

// Symbolic returns a RefValue pointing at another ref.
func Symbolic(name string) RefValue {
	return RefValue{Symbolic: true, Value: name}
}

// Hash returns the value as an object hash. It is empty for symbolic and
// unset values.
func (v RefValue) Hash() object.Hash {
	if v.Symbolic {
		return ""
	}
	return object.Hash(v.Value)
}

// IsUnset reports whether the ref holds nothing.
func (v RefValue) IsUnset() bool {
	return v.Value == ""
}

func (v RefValue) String() string {
	if v.Symbolic {
		return symrefPrefix + v.Value
	}
	return v.Value
}

// Ref is a named RefValue.
type Ref struct {
	Name string
	RefValue
}

// ValidateRefName accepts HEAD and slash-separated names under refs/ with
// no empty, "." or ".." segments and no whitespace or control characters.
func ValidateRefName(name string) error {
	if name == HEAD {
		return nil
	}
	if !strings.HasPrefix(name, refsPrefix) {
		return fmt.Errorf("%w: %q", ErrInvalidRefName, name)
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidRefName, name)
		}
	}
	for _, c := range name {
		if c <= ' ' || c == 0x7f || strings.ContainsRune(`\:?*[~^`, c) {
			return fmt.Errorf("%w: %q", ErrInvalidRefName, name)
		}
	}
	return nil
}

// readRef reads one ref without following symbolic values. A missing ref
// or a directory at the ref's path reads as unset.
func (r *Repo) readRef(name string) (RefValue, error) {
	p := r.gitPath(name)
	info, err := r.FS.Lstat(p)
	if err != nil {
		if fsys.IsNotExist(err) {
			return RefValue{}, nil
		}
		return RefValue{}, fmt.Errorf("read ref %q: %w", name, err)
	}
	if info.IsDir() {
		return RefValue{}, nil
	}

	data, err := r.FS.ReadFile(p)
	if err != nil {
		return RefValue{}, fmt.Errorf("read ref %q: %w", name, err)
	}
	content := strings.TrimSpace(string(data))
	switch {
	case content == "":
		return RefValue{}, nil
	case strings.HasPrefix(content, symrefPrefix):
		return Symbolic(strings.TrimSpace(strings.TrimPrefix(content, symrefPrefix))), nil
	case object.ValidHash(content):
		return RefValue{Value: content}, nil
	default:
		return RefValue{}, fmt.Errorf("read ref %q: %w: %q", name, ErrMalformedRef, content)
	}
}

// GetRef reads the ref called name. When deref is set, symbolic values are
// followed until a direct or unset value is reached, and the returned Name
// is that of the last ref in the chain. An unset ref is not an error: the
// returned value is simply empty.
func (r *Repo) GetRef(name string, deref bool) (Ref, error) {
	if err := ValidateRefName(name); err != nil {
		return Ref{}, err
	}

	seen := make(map[string]struct{})
	for {
		val, err := r.readRef(name)
		if err != nil {
			return Ref{}, err
		}
		if !deref || !val.Symbolic {
			return Ref{Name: name, RefValue: val}, nil
		}

		seen[name] = struct{}{}
		if len(seen) > maxSymrefDepth {
			return Ref{}, fmt.Errorf("get ref %q: %w (depth > %d)", name, ErrSymrefLoop, maxSymrefDepth)
		}
		if _, loop := seen[val.Value]; loop {
			return Ref{}, fmt.Errorf("get ref %q: %w", val.Value, ErrSymrefLoop)
		}
		if err := ValidateRefName(val.Value); err != nil {
			return Ref{}, fmt.Errorf("get ref %q: symbolic target: %w", name, err)
		}
		name = val.Value
	}
}

// UpdateRef writes value at name, creating parent directories as needed.
// With deref, the write lands on the last ref of the symbolic chain that
// starts at name.
func (r *Repo) UpdateRef(name string, value RefValue, deref bool) error {
	return r.updateRef(name, value, deref, "update")
}

func (r *Repo) updateRef(name string, value RefValue, deref bool, reason string) error {
	if err := ValidateRefName(name); err != nil {
		return fmt.Errorf("update ref: %w", err)
	}
	if value.Symbolic {
		if err := ValidateRefName(value.Value); err != nil {
			return fmt.Errorf("update ref %q: symbolic target: %w", name, err)
		}
	} else if !object.ValidHash(value.Value) {
		return fmt.Errorf("update ref %q: invalid hash %q", name, value.Value)
	}

	if deref {
		target, err := r.GetRef(name, true)
		if err != nil {
			return fmt.Errorf("update ref %q: %w", name, err)
		}
		name = target.Name
	}

	old, err := r.readRef(name)
	if err != nil {
		return fmt.Errorf("update ref %q: read old value: %w", name, err)
	}

	refPath := r.gitPath(name)
	if err := r.FS.MkdirAll(path.Dir(refPath), 0o755); err != nil {
		return fmt.Errorf("update ref %q: mkdir: %w", name, err)
	}
	if err := r.FS.WriteFile(refPath, []byte(value.String()+"\n"), 0o644); err != nil {
		return fmt.Errorf("update ref %q: write: %w", name, err)
	}

	if !value.Symbolic {
		if err := r.appendReflog(name, old.Hash(), value.Hash(), reason); err != nil {
			return &RefUpdateReflogError{Ref: name, OldHash: old.Hash(), NewHash: value.Hash(), Err: err}
		}
	}
	return nil
}

// DeleteRef removes the ref called name. Deleting an unset ref is an error.
func (r *Repo) DeleteRef(name string) error {
	if err := ValidateRefName(name); err != nil {
		return fmt.Errorf("delete ref: %w", err)
	}
	val, err := r.readRef(name)
	if err != nil {
		return fmt.Errorf("delete ref: %w", err)
	}
	if val.IsUnset() {
		return fmt.Errorf("delete ref %q: does not exist", name)
	}
	if err := r.FS.Remove(r.gitPath(name)); err != nil {
		return fmt.Errorf("delete ref %q: %w", name, err)
	}
	return nil
}

// IterRefs lazily enumerates HEAD followed by every ref under refs/, in
// name order, keeping those whose name starts with prefix. Each call walks
// the ref namespace afresh.
func (r *Repo) IterRefs(prefix string, deref bool) iter.Seq2[Ref, error] {
	return func(yield func(Ref, error) bool) {
		w := &refWalker{r: r, prefix: prefix, deref: deref, yield: yield}
		if fsys.Exists(r.FS, r.gitPath(HEAD)) && !w.emit(HEAD) {
			return
		}
		w.walk("refs")
	}
}

type refWalker struct {
	r      *Repo
	prefix string
	deref  bool
	yield  func(Ref, error) bool
}

func (w *refWalker) emit(name string) bool {
	if !strings.HasPrefix(name, w.prefix) {
		return true
	}
	ref, err := w.r.GetRef(name, w.deref)
	if err != nil {
		w.yield(Ref{Name: name}, err)
		return false
	}
	return w.yield(ref, nil)
}

// walk visits ref files under dir depth-first in name order. It returns
// false once the consumer stops or an error was yielded.
func (w *refWalker) walk(dir string) bool {
	// Skip subtrees that cannot contain a matching name.
	if !strings.HasPrefix(dir+"/", w.prefix) && !strings.HasPrefix(w.prefix, dir+"/") {
		return true
	}
	entries, err := w.r.FS.ReadDir(w.r.gitPath(dir))
	if err != nil {
		if fsys.IsNotExist(err) {
			return true
		}
		w.yield(Ref{Name: dir}, fmt.Errorf("iter refs: %w", err))
		return false
	}
	for _, e := range entries {
		name := dir + "/" + e.Name()
		if e.IsDir() {
			if !w.walk(name) {
				return false
			}
			continue
		}
		if !w.emit(name) {
			return false
		}
	}
	return true
}
