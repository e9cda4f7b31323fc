package repo

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/loki9919/MyGit/pkg/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTree_RoundTrip(t *testing.T) {
	r := newTestRepo(t)
	want := map[string]string{
		"a.txt":            "alpha",
		"b/c.txt":          "charlie",
		"b/d/e.txt":        "echo",
		"empty.txt":        "",
		"z/very/deep/f.md": "foxtrot",
	}
	for name, content := range want {
		writeFile(t, r, name, content)
	}
	h, err := r.WriteTree(".")
	require.NoError(t, err)

	// Scramble the work tree.
	writeFile(t, r, "a.txt", "changed")
	writeFile(t, r, "extra/new.txt", "new")
	require.NoError(t, r.FS.Remove("b/d/e.txt"))

	require.NoError(t, r.ReadTree(h))

	got := make(map[string]string)
	for _, p := range workFiles(t, r) {
		got[p] = readFile(t, r, p)
	}
	assert.Equal(t, want, got)
	assert.False(t, dirExists(r, "extra"), "directories emptied by checkout are removed")

	again, err := r.WriteTree(".")
	require.NoError(t, err)
	assert.Equal(t, h, again)
}

func dirExists(r *Repo, p string) bool {
	info, err := r.FS.Lstat(p)
	return err == nil && info.IsDir()
}

func TestReadTree_KeepsControlDirectory(t *testing.T) {
	r := newTestRepo(t)
	h := commitFiles(t, r, "first", map[string]string{"a.txt": "a"})

	c, err := r.GetCommit(h)
	require.NoError(t, err)
	require.NoError(t, r.ReadTree(c.TreeHash))

	assert.True(t, r.Store.Has(h), "objects survive checkout")
	head, err := r.GetRef(HEAD, true)
	require.NoError(t, err)
	assert.Equal(t, h, head.Hash())
}

func TestReadTree_MissingBlobLeavesWorkTree(t *testing.T) {
	r := newTestRepo(t)
	tree := &object.TreeObj{Entries: []object.TreeEntry{
		{Type: object.TypeBlob, Hash: fakeHash('9'), Name: "ghost.txt"},
	}}
	h, err := r.Store.WriteTree(tree)
	require.NoError(t, err)
	writeFile(t, r, "keep.txt", "keep")

	err = r.ReadTree(h)
	require.ErrorIs(t, err, object.ErrNotFound)
	assert.Equal(t, "keep", readFile(t, r, "keep.txt"))
}

func TestReadTree_WriteConflict(t *testing.T) {
	r := newTestRepo(t)
	writeFile(t, r, "build/out.o", "binary")
	writeFile(t, r, DefaultIgnoreFile, "build/\n")

	// A tree holding a file named "build" collides with the ignored
	// directory, which checkout must not remove.
	blob, err := r.Store.Put(object.TypeBlob, []byte("file"))
	require.NoError(t, err)
	ignoreBlob, err := r.Store.Put(object.TypeBlob, []byte("build/\n"))
	require.NoError(t, err)
	h, err := r.Store.WriteTree(&object.TreeObj{Entries: []object.TreeEntry{
		{Type: object.TypeBlob, Hash: ignoreBlob, Name: DefaultIgnoreFile},
		{Type: object.TypeBlob, Hash: blob, Name: "build"},
	}})
	require.NoError(t, err)

	err = r.ReadTree(h)
	require.ErrorIs(t, err, ErrWriteConflict)
}

// Checkout of an older commit reproduces its tree and detaches HEAD.
func TestCheckout_OlderCommit(t *testing.T) {
	r := newTestRepo(t)
	c1 := commitFiles(t, r, "c1", map[string]string{"a.txt": "one", "dir/b.txt": "bee"})
	require.NoError(t, r.FS.Remove("dir/b.txt"))
	c2 := commitFiles(t, r, "c2", map[string]string{"a.txt": "two", "c.txt": "sea"})

	commit2, err := r.GetCommit(c2)
	require.NoError(t, err)
	require.Equal(t, c1, commit2.Parent)

	require.NoError(t, r.Checkout(c1))

	assert.Equal(t, []string{"a.txt", "dir/b.txt"}, workFiles(t, r))
	assert.Equal(t, "one", readFile(t, r, "a.txt"))
	assert.Equal(t, "bee", readFile(t, r, "dir/b.txt"))

	head, err := r.GetRef(HEAD, false)
	require.NoError(t, err)
	assert.False(t, head.Symbolic)
	assert.Equal(t, c1, head.Hash())
}

func TestCheckout_NotACommit(t *testing.T) {
	r := newTestRepo(t)
	blob, err := r.Store.Put(object.TypeBlob, []byte("x"))
	require.NoError(t, err)

	err = r.Checkout(blob)
	require.ErrorIs(t, err, object.ErrTypeMismatch)
	require.ErrorIs(t, r.Checkout(fakeHash('0')), object.ErrNotFound)
}

func TestSwitchBranch(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, r.UpdateRef(HEAD, Symbolic("refs/heads/main"), false))
	c1 := commitFiles(t, r, "c1", map[string]string{"a.txt": "one"})
	require.NoError(t, r.CreateBranch("feature", c1))
	c2 := commitFiles(t, r, "c2", map[string]string{"a.txt": "two"})

	require.NoError(t, r.SwitchBranch("feature"))
	assert.Equal(t, "one", readFile(t, r, "a.txt"))
	branch, err := r.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "feature", branch)

	c3 := commitFiles(t, r, "c3", map[string]string{"b.txt": "bee"})
	feature, err := r.GetOID("feature")
	require.NoError(t, err)
	assert.Equal(t, c3, feature)
	main, err := r.GetOID("main")
	require.NoError(t, err)
	assert.Equal(t, c2, main)

	assert.Error(t, r.SwitchBranch("missing"))
}

func TestReadTree_OSFS(t *testing.T) {
	dir := t.TempDir()
	r, err := InitDir(dir, nil)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "main.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".mygitignore"), []byte("*.log\n"), 0o644))
	c1, err := r.Commit("first")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "debug.log"), []byte("log"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tmp", "logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp", "logs", "run.log"), []byte("log"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp", "scratch.txt"), []byte("x"), 0o644))

	require.NoError(t, r.Checkout(c1))

	data, err := os.ReadFile(filepath.Join(dir, "src", "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(data))
	assert.FileExists(t, filepath.Join(dir, "debug.log"))
	assert.FileExists(t, filepath.Join(dir, "tmp", "logs", "run.log"), "ignored files keep their non-empty directories")
	assert.NoFileExists(t, filepath.Join(dir, "tmp", "scratch.txt"))
	assert.DirExists(t, filepath.Join(dir, ".mygit", "objects"))
}

// A backslash is an ordinary filename byte on POSIX systems.
func TestCheckout_BackslashNames_OSFS(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("backslash is a path separator on windows")
	}
	dir := t.TempDir()
	r, err := InitDir(dir, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, `a\b.txt`), []byte("slash"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, `c\d`), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, `c\d`, "e.txt"), []byte("nested"), 0o644))

	c1, err := r.Commit("backslashes")
	require.NoError(t, err)
	commit, err := r.GetCommit(c1)
	require.NoError(t, err)

	entries := make(map[string]object.ObjectType)
	for e, err := range r.IterTreeEntries(commit.TreeHash) {
		require.NoError(t, err)
		entries[e.Name] = e.Type
	}
	assert.Equal(t, map[string]object.ObjectType{
		`a\b.txt`: object.TypeBlob,
		`c\d`:     object.TypeTree,
	}, entries)

	require.NoError(t, os.WriteFile(filepath.Join(dir, `a\b.txt`), []byte("changed"), 0o644))
	require.NoError(t, os.Remove(filepath.Join(dir, `c\d`, "e.txt")))
	require.NoError(t, r.Checkout(c1))

	data, err := os.ReadFile(filepath.Join(dir, `a\b.txt`))
	require.NoError(t, err)
	assert.Equal(t, "slash", string(data))
	data, err = os.ReadFile(filepath.Join(dir, `c\d`, "e.txt"))
	require.NoError(t, err)
	assert.Equal(t, "nested", string(data))
	assert.NoDirExists(t, filepath.Join(dir, "a"))
	assert.NoDirExists(t, filepath.Join(dir, "c"))

	again, err := r.WriteTree(".")
	require.NoError(t, err)
	assert.Equal(t, commit.TreeHash, again)
}
