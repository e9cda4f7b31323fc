package repo

import (
	"bytes"
	"strings"

	"github.com/denormal/go-gitignore"
	"github.com/loki9919/MyGit/pkg/fsys"
)

// IsIgnored reports whether path lies inside the control directory, i.e.
// whether DirName appears as one of its components. Such paths are never
// snapshotted, cleared or written by checkout.
func IsIgnored(path string) bool {
	for _, seg := range strings.Split(fsys.Clean(path), "/") {
		if seg == DirName {
			return true
		}
	}
	return false
}

// IgnoreChecker combines the control-directory rule with the patterns of
// the repository's ignore file.
type IgnoreChecker struct {
	matcher gitignore.GitIgnore
}

// NewIgnoreChecker reads the ignore file (gitignore syntax) from the work
// tree root. A missing or unreadable file leaves only the control-directory
// rule in force.
func (r *Repo) NewIgnoreChecker() *IgnoreChecker {
	ic := &IgnoreChecker{}
	data, err := r.FS.ReadFile(r.Config.Core.IgnoreFile)
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return ic
	}
	// Keep parsing past bad lines.
	ic.matcher = gitignore.New(bytes.NewReader(data), ".", func(gitignore.Error) bool { return true })
	return ic
}

// IsIgnored reports whether the work tree path (relative, slash-separated)
// should be left out of snapshots and left alone by checkout.
func (ic *IgnoreChecker) IsIgnored(path string, isDir bool) bool {
	if IsIgnored(path) {
		return true
	}
	if ic == nil || ic.matcher == nil {
		return false
	}
	m := ic.matcher.Relative(fsys.Clean(path), isDir)
	return m != nil && m.Ignore()
}
