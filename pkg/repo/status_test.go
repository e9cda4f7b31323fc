package repo

import (
	"testing"

	"github.com/loki9919/MyGit/pkg/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_NoCommits(t *testing.T) {
	r := newTestRepo(t)
	writeFile(t, r, "a.txt", "a")
	writeFile(t, r, "dir/b.txt", "b")

	entries, err := r.Status()
	require.NoError(t, err)
	assert.Equal(t, []StatusEntry{
		{Path: "a.txt", Status: StatusNew},
		{Path: "dir/b.txt", Status: StatusNew},
	}, entries)
}

func TestStatus_AgainstHead(t *testing.T) {
	r := newTestRepo(t)
	writeFile(t, r, DefaultIgnoreFile, "*.tmp\n")
	commitFiles(t, r, "base", map[string]string{
		"keep.txt":   "same",
		"change.txt": "before",
		"gone.txt":   "bye",
	})

	writeFile(t, r, "change.txt", "after")
	require.NoError(t, r.FS.Remove("gone.txt"))
	writeFile(t, r, "added.txt", "hi")
	writeFile(t, r, "scratch.tmp", "ignored")

	entries, err := r.Status()
	require.NoError(t, err)
	assert.Equal(t, []StatusEntry{
		{Path: "added.txt", Status: StatusNew},
		{Path: "change.txt", Status: StatusModified},
		{Path: "gone.txt", Status: StatusDeleted},
	}, entries)

	// Status never writes objects.
	h, err := object.HashObject(r.Store.Algorithm(), object.TypeBlob, []byte("after"))
	require.NoError(t, err)
	assert.False(t, r.Store.Has(h))
}

func TestStatus_CleanAfterCommit(t *testing.T) {
	r := newTestRepo(t)
	commitFiles(t, r, "base", map[string]string{"a.txt": "a", "sub/b.txt": "b"})

	entries, err := r.Status()
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, "modified", StatusModified.String())
}

func TestTreeEntryAtPath(t *testing.T) {
	r := newTestRepo(t)
	h := commitFiles(t, r, "base", map[string]string{"src/pkg/x.go": "package pkg", "top.txt": "top"})
	c, err := r.GetCommit(h)
	require.NoError(t, err)

	e, found, err := r.TreeEntryAtPath(c.TreeHash, "src/pkg/x.go")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, object.TypeBlob, e.Type)

	e, found, err = r.TreeEntryAtPath(c.TreeHash, "src/pkg")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, object.TypeTree, e.Type)

	for _, missing := range []string{"nope", "top.txt/x", "src/other"} {
		_, found, err = r.TreeEntryAtPath(c.TreeHash, missing)
		require.NoError(t, err)
		assert.False(t, found, missing)
	}

	_, _, data, err := r.CatFile("@:src/pkg/x.go", object.TypeBlob)
	require.NoError(t, err)
	assert.Equal(t, "package pkg", string(data))

	got, typ, _, err := r.CatFile("@:", "")
	require.NoError(t, err)
	assert.Equal(t, object.TypeTree, typ)
	assert.Equal(t, c.TreeHash, got)

	_, _, _, err = r.CatFile("@:missing", "")
	require.ErrorIs(t, err, ErrUnknownName)
}
