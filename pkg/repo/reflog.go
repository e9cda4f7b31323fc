package repo

import (
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/loki9919/MyGit/pkg/fsys"
	"github.com/loki9919/MyGit/pkg/object"
)

const zeroHash = "0000000000000000000000000000000000000000"

var ErrRefUpdatedButReflogAppendFailed = errors.New("ref updated but reflog append failed")

// RefUpdateReflogError indicates the ref file update succeeded, but appending
// the corresponding reflog entry failed.
type RefUpdateReflogError struct {
	Ref     string
	OldHash object.Hash
	NewHash object.Hash
	Err     error
}

func (e *RefUpdateReflogError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf(
		"update ref %q: %s (old=%s new=%s): %v",
		e.Ref,
		ErrRefUpdatedButReflogAppendFailed,
		e.OldHash,
		e.NewHash,
		e.Err,
	)
}

func (e *RefUpdateReflogError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *RefUpdateReflogError) Is(target error) bool {
	return target == ErrRefUpdatedButReflogAppendFailed
}

type ReflogEntry struct {
	Ref       string
	OldHash   object.Hash
	NewHash   object.Hash
	Timestamp int64
	Reason    string
}

func (r *Repo) reflogPath(ref string) string {
	return r.gitPath("logs", ref)
}

func (r *Repo) appendReflog(ref string, oldHash, newHash object.Hash, reason string) error {
	reason = strings.Join(strings.Fields(reason), " ")
	if reason == "" {
		reason = "update"
	}

	logPath := r.reflogPath(ref)
	if err := r.FS.MkdirAll(path.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("reflog mkdir: %w", err)
	}

	old := string(oldHash)
	if old == "" {
		old = zeroHash
	}
	newVal := string(newHash)
	if newVal == "" {
		newVal = zeroHash
	}
	line := fmt.Sprintf("%s %s %d %s\n", old, newVal, r.now().Unix(), reason)

	existing, err := r.FS.ReadFile(logPath)
	if err != nil && !fsys.IsNotExist(err) {
		return fmt.Errorf("reflog read: %w", err)
	}
	if err := r.FS.WriteFile(logPath, append(existing, line...), 0o644); err != nil {
		return fmt.Errorf("reflog write: %w", err)
	}
	return nil
}

// ReadReflog returns up to limit entries for ref, newest first. A limit of
// zero or less returns all entries. An empty ref or HEAD selects the branch
// HEAD points at, or HEAD itself when detached.
func (r *Repo) ReadReflog(ref string, limit int) ([]ReflogEntry, error) {
	refName, err := r.resolveReflogRefName(ref)
	if err != nil {
		return nil, err
	}

	data, err := r.FS.ReadFile(r.reflogPath(refName))
	if err != nil {
		if fsys.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read reflog: %w", err)
	}

	var entries []ReflogEntry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 4)
		if len(parts) < 4 {
			continue
		}
		ts, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, ReflogEntry{
			Ref:       refName,
			OldHash:   reflogHash(parts[0]),
			NewHash:   reflogHash(parts[1]),
			Timestamp: ts,
			Reason:    parts[3],
		})
	}

	// Return newest first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func reflogHash(s string) object.Hash {
	if s == zeroHash {
		return ""
	}
	return object.Hash(s)
}

func (r *Repo) resolveReflogRefName(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || ref == HEAD || ref == "@" {
		head, err := r.GetRef(HEAD, false)
		if err != nil {
			return "", err
		}
		if head.Symbolic {
			return head.Value, nil
		}
		return HEAD, nil
	}
	if strings.HasPrefix(ref, refsPrefix) {
		return ref, ValidateRefName(ref)
	}
	name := branchesPrefix + ref
	return name, ValidateRefName(name)
}
