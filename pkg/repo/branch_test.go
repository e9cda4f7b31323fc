package repo

import (
	"testing"

	"github.com/loki9919/MyGit/pkg/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranch_CreateListDelete(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, r.UpdateRef(HEAD, Symbolic("refs/heads/main"), false))
	h := commitFiles(t, r, "initial", map[string]string{"main.go": "package main\n"})

	require.NoError(t, r.CreateBranch("feature", h))
	require.NoError(t, r.CreateBranch("fix/bug-1", h))

	branches, err := r.ListBranches()
	require.NoError(t, err)
	assert.Equal(t, []string{"feature", "fix/bug-1", "main"}, branches)

	err = r.CreateBranch("feature", h)
	require.ErrorIs(t, err, ErrRefExists)

	require.NoError(t, r.DeleteBranch("feature"))
	branches, err = r.ListBranches()
	require.NoError(t, err)
	assert.Equal(t, []string{"fix/bug-1", "main"}, branches)

	assert.Error(t, r.DeleteBranch("feature"), "already deleted")
	assert.Error(t, r.DeleteBranch("main"), "current branch")
}

func TestBranch_CreateRequiresObject(t *testing.T) {
	r := newTestRepo(t)
	err := r.CreateBranch("ghost", fakeHash('d'))
	require.ErrorIs(t, err, object.ErrNotFound)

	err = r.CreateBranch("bad name", fakeHash('d'))
	require.ErrorIs(t, err, ErrInvalidRefName)
}

func TestCurrentBranch(t *testing.T) {
	r := newTestRepo(t)
	name, err := r.CurrentBranch()
	require.NoError(t, err)
	assert.Empty(t, name, "unset HEAD")

	require.NoError(t, r.UpdateRef(HEAD, Symbolic("refs/heads/trunk"), false))
	name, err = r.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "trunk", name)

	h := commitFiles(t, r, "c", map[string]string{"a": "a"})
	require.NoError(t, r.Checkout(h))
	name, err = r.CurrentBranch()
	require.NoError(t, err)
	assert.Empty(t, name, "detached HEAD")
}

func TestTag_CreateListDelete(t *testing.T) {
	r := newTestRepo(t)
	h := commitFiles(t, r, "release", map[string]string{"a": "a"})

	require.NoError(t, r.CreateTag("v1.0", h))
	require.NoError(t, r.CreateTag("v0.9", h))
	require.ErrorIs(t, r.CreateTag("v1.0", h), ErrRefExists)

	tags, err := r.ListTags()
	require.NoError(t, err)
	assert.Equal(t, []string{"v0.9", "v1.0"}, tags)

	got, err := r.GetOID("v1.0")
	require.NoError(t, err)
	assert.Equal(t, h, got)

	require.NoError(t, r.DeleteTag("v0.9"))
	tags, err = r.ListTags()
	require.NoError(t, err)
	assert.Equal(t, []string{"v1.0"}, tags)
	assert.Error(t, r.DeleteTag("v0.9"))
}

func TestReset_MovesBranchKeepsWorkTree(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, r.UpdateRef(HEAD, Symbolic("refs/heads/main"), false))
	c1 := commitFiles(t, r, "c1", map[string]string{"a.txt": "one"})
	commitFiles(t, r, "c2", map[string]string{"a.txt": "two"})

	require.NoError(t, r.Reset(c1))

	main, err := r.GetOID("main")
	require.NoError(t, err)
	assert.Equal(t, c1, main)
	assert.Equal(t, "two", readFile(t, r, "a.txt"))

	branch, err := r.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestReset_RejectsNonCommit(t *testing.T) {
	r := newTestRepo(t)
	blob, err := r.Store.Put(object.TypeBlob, []byte("x"))
	require.NoError(t, err)

	require.ErrorIs(t, r.Reset(blob), object.ErrTypeMismatch)
}
