package object

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// ---------------------------------------------------------------------------
// TreeObj
// ---------------------------------------------------------------------------

// ValidateEntryName reports why name cannot appear in a tree, or nil.
func ValidateEntryName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("empty entry name")
	case name == "." || name == "..":
		return fmt.Errorf("entry name %q not allowed", name)
	case strings.ContainsAny(name, "/\n"):
		return fmt.Errorf("entry name %q contains a separator", name)
	}
	return nil
}

// MarshalTree serializes a TreeObj. Entries are sorted by Name so that
// equal directories always produce identical bytes. Each entry is one line:
//
//	type hash name
func MarshalTree(tr *TreeObj) ([]byte, error) {
	sorted := make([]TreeEntry, len(tr.Entries))
	copy(sorted, tr.Entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	var buf bytes.Buffer
	for i, e := range sorted {
		if err := ValidateEntryName(e.Name); err != nil {
			return nil, fmt.Errorf("marshal tree: %w: %v", ErrMalformedTree, err)
		}
		if i > 0 && sorted[i-1].Name == e.Name {
			return nil, fmt.Errorf("marshal tree: %w: duplicate entry %q", ErrMalformedTree, e.Name)
		}
		if e.Type != TypeBlob && e.Type != TypeTree {
			return nil, fmt.Errorf("marshal tree: %w: entry %q has type %q", ErrMalformedTree, e.Name, e.Type)
		}
		if !ValidHash(string(e.Hash)) {
			return nil, fmt.Errorf("marshal tree: %w: entry %q has bad hash %q", ErrMalformedTree, e.Name, e.Hash)
		}
		fmt.Fprintf(&buf, "%s %s %s\n", e.Type, e.Hash, e.Name)
	}
	return buf.Bytes(), nil
}

// UnmarshalTree parses a TreeObj from its serialized form.
func UnmarshalTree(data []byte) (*TreeObj, error) {
	tr := &TreeObj{}
	text := string(data)
	if text == "" {
		return tr, nil
	}
	if !strings.HasSuffix(text, "\n") {
		return nil, treeError(0, "missing trailing newline")
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		e, err := parseTreeLine(i+1, line)
		if err != nil {
			return nil, err
		}
		tr.Entries = append(tr.Entries, e)
	}
	return tr, nil
}

func parseTreeLine(lineNo int, line string) (TreeEntry, error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) != 3 {
		return TreeEntry{}, treeError(lineNo, "want 3 fields, got %d", len(parts))
	}
	typ := ObjectType(parts[0])
	if typ != TypeBlob && typ != TypeTree {
		return TreeEntry{}, treeError(lineNo, "unknown entry type %q", parts[0])
	}
	if !ValidHash(parts[1]) {
		return TreeEntry{}, treeError(lineNo, "bad hash %q", parts[1])
	}
	if err := ValidateEntryName(parts[2]); err != nil {
		return TreeEntry{}, treeError(lineNo, "%v", err)
	}
	return TreeEntry{Type: typ, Hash: Hash(parts[1]), Name: parts[2]}, nil
}

// ---------------------------------------------------------------------------
// CommitObj
// ---------------------------------------------------------------------------

// MarshalCommit serializes a CommitObj:
//
//	tree H
//	parent H     (optional)
//
//	message
func MarshalCommit(c *CommitObj) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", c.TreeHash)
	if c.Parent != "" {
		fmt.Fprintf(&buf, "parent %s\n", c.Parent)
	}
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	buf.WriteByte('\n')
	return buf.Bytes()
}

// UnmarshalCommit parses a CommitObj. The header may only hold one tree
// line and at most one parent line; the message is everything after the
// first blank line with trailing whitespace removed.
func UnmarshalCommit(data []byte) (*CommitObj, error) {
	text := string(data)
	idx := strings.Index(text, "\n\n")
	if idx < 0 {
		return nil, commitError(0, "missing header/message separator")
	}
	header := text[:idx]

	c := &CommitObj{Message: strings.TrimRight(text[idx+2:], " \t\r\n")}
	seenTree, seenParent := false, false
	for i, line := range strings.Split(header, "\n") {
		lineNo := i + 1
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, commitError(lineNo, "malformed header line %q", line)
		}
		switch key {
		case "tree":
			if seenTree {
				return nil, commitError(lineNo, "duplicate tree header")
			}
			seenTree = true
			c.TreeHash = Hash(val)
		case "parent":
			if seenParent {
				return nil, commitError(lineNo, "more than one parent header")
			}
			seenParent = true
			c.Parent = Hash(val)
		default:
			return nil, commitError(lineNo, "unknown header key %q", key)
		}
		if !ValidHash(val) {
			return nil, commitError(lineNo, "bad %s hash %q", key, val)
		}
	}
	if !seenTree {
		return nil, commitError(0, "missing tree header")
	}
	return c, nil
}
