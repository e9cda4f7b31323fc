package repo

import (
	"path"
	"sort"
	"testing"
	"time"

	"github.com/loki9919/MyGit/pkg/fsys"
	"github.com/loki9919/MyGit/pkg/object"
	"github.com/stretchr/testify/require"
)

// newTestRepo initializes a repository on an in-memory filesystem with a
// fixed clock.
func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	r, err := Init(fsys.NewMemoryFS(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	r.now = func() time.Time { return time.Unix(1700000000, 0) }
	return r
}

func writeFile(t *testing.T, r *Repo, name, content string) {
	t.Helper()
	if dir := path.Dir(name); dir != "." {
		require.NoError(t, r.FS.MkdirAll(dir, 0o755))
	}
	require.NoError(t, r.FS.WriteFile(name, []byte(content), 0o644))
}

func readFile(t *testing.T, r *Repo, name string) string {
	t.Helper()
	data, err := r.FS.ReadFile(name)
	require.NoError(t, err)
	return string(data)
}

// workFiles lists every regular file outside the control directory.
func workFiles(t *testing.T, r *Repo) []string {
	t.Helper()
	var out []string
	var walk func(dir string)
	walk = func(dir string) {
		entries, err := r.FS.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			p := fsys.Join(dir, e.Name())
			if IsIgnored(p) {
				continue
			}
			if e.IsDir() {
				walk(p)
				continue
			}
			out = append(out, p)
		}
	}
	walk(".")
	sort.Strings(out)
	return out
}

func commitFiles(t *testing.T, r *Repo, msg string, files map[string]string) object.Hash {
	t.Helper()
	for name, content := range files {
		writeFile(t, r, name, content)
	}
	h, err := r.Commit(msg)
	require.NoError(t, err)
	return h
}

func fakeHash(c byte) object.Hash {
	b := make([]byte, object.HashLen)
	for i := range b {
		b[i] = c
	}
	return object.Hash(b)
}
