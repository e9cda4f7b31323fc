package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefs_DirectAndSymbolic(t *testing.T) {
	r := newTestRepo(t)
	h := fakeHash('a')

	require.NoError(t, r.UpdateRef(HEAD, Symbolic("refs/heads/main"), false))

	head, err := r.GetRef(HEAD, true)
	require.NoError(t, err)
	assert.Equal(t, "refs/heads/main", head.Name)
	assert.True(t, head.IsUnset(), "branch is unborn")

	// Writing through HEAD lands on the branch and keeps HEAD symbolic.
	require.NoError(t, r.UpdateRef(HEAD, Direct(h), true))

	main, err := r.GetRef("refs/heads/main", false)
	require.NoError(t, err)
	assert.Equal(t, h, main.Hash())

	raw, err := r.GetRef(HEAD, false)
	require.NoError(t, err)
	assert.Equal(t, Symbolic("refs/heads/main"), raw.RefValue)
	assert.Equal(t, "ref: refs/heads/main\n", readFile(t, r, ".mygit/HEAD"))

	deref, err := r.GetRef(HEAD, true)
	require.NoError(t, err)
	assert.Equal(t, h, deref.Hash())
}

func TestRefs_UpdateWithoutDerefDetaches(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, r.UpdateRef(HEAD, Symbolic("refs/heads/main"), false))
	require.NoError(t, r.UpdateRef(HEAD, Direct(fakeHash('b')), false))

	head, err := r.GetRef(HEAD, false)
	require.NoError(t, err)
	assert.False(t, head.Symbolic)
	assert.Equal(t, fakeHash('b'), head.Hash())

	main, err := r.GetRef("refs/heads/main", false)
	require.NoError(t, err)
	assert.True(t, main.IsUnset())
}

func TestRefs_SymrefLoop(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, r.UpdateRef(HEAD, Symbolic("refs/heads/a"), false))
	require.NoError(t, r.UpdateRef("refs/heads/a", Symbolic(HEAD), false))

	_, err := r.GetRef(HEAD, true)
	require.ErrorIs(t, err, ErrSymrefLoop)

	err = r.UpdateRef(HEAD, Direct(fakeHash('c')), true)
	require.ErrorIs(t, err, ErrSymrefLoop)
}

func TestRefs_SymrefDepthLimit(t *testing.T) {
	r := newTestRepo(t)
	names := []string{HEAD, "refs/s1", "refs/s2", "refs/s3", "refs/s4", "refs/s5", "refs/s6"}
	for i := 0; i < len(names)-1; i++ {
		require.NoError(t, r.UpdateRef(names[i], Symbolic(names[i+1]), false))
	}
	require.NoError(t, r.UpdateRef(names[len(names)-1], Direct(fakeHash('d')), false))

	_, err := r.GetRef(HEAD, true)
	require.ErrorIs(t, err, ErrSymrefLoop)

	// A shorter chain resolves.
	ref, err := r.GetRef("refs/s2", true)
	require.NoError(t, err)
	assert.Equal(t, fakeHash('d'), ref.Hash())
	assert.Equal(t, "refs/s6", ref.Name)
}

func TestRefs_InvalidNames(t *testing.T) {
	r := newTestRepo(t)
	for _, name := range []string{"", "main", "config", "refs/", "refs//x", "refs/../config", "refs/a b", "refs/a:b", "head"} {
		_, err := r.GetRef(name, false)
		assert.ErrorIs(t, err, ErrInvalidRefName, "GetRef(%q)", name)
		assert.ErrorIs(t, r.UpdateRef(name, Direct(fakeHash('a')), false), ErrInvalidRefName, "UpdateRef(%q)", name)
	}
	assert.Error(t, r.UpdateRef("refs/heads/x", Direct("not-a-hash"), false))
	assert.ErrorIs(t, r.UpdateRef(HEAD, Symbolic("main"), false), ErrInvalidRefName)
}

func TestRefs_Malformed(t *testing.T) {
	r := newTestRepo(t)
	writeFile(t, r, ".mygit/refs/heads/bad", "garbage\n")

	_, err := r.GetRef("refs/heads/bad", false)
	require.ErrorIs(t, err, ErrMalformedRef)
}

func TestRefs_Delete(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, r.UpdateRef("refs/tags/v1", Direct(fakeHash('e')), false))
	require.NoError(t, r.DeleteRef("refs/tags/v1"))

	ref, err := r.GetRef("refs/tags/v1", false)
	require.NoError(t, err)
	assert.True(t, ref.IsUnset())
	assert.Error(t, r.DeleteRef("refs/tags/v1"))
}

func TestIterRefs(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, r.UpdateRef("refs/heads/main", Direct(fakeHash('1')), false))
	require.NoError(t, r.UpdateRef("refs/heads/feature/x", Direct(fakeHash('2')), false))
	require.NoError(t, r.UpdateRef("refs/tags/v1", Direct(fakeHash('3')), false))
	require.NoError(t, r.UpdateRef(HEAD, Symbolic("refs/heads/main"), false))

	var names []string
	var values []string
	for ref, err := range r.IterRefs("", true) {
		require.NoError(t, err)
		names = append(names, ref.Name)
		values = append(values, ref.Value)
	}
	// HEAD is reported under the name of the ref it resolves to.
	assert.Equal(t, []string{"refs/heads/main", "refs/heads/feature/x", "refs/heads/main", "refs/tags/v1"}, names)
	assert.Equal(t, []string{string(fakeHash('1')), string(fakeHash('2')), string(fakeHash('1')), string(fakeHash('3'))}, values)

	names = nil
	for ref, err := range r.IterRefs(HEAD, false) {
		require.NoError(t, err)
		names = append(names, ref.Name)
		assert.True(t, ref.Symbolic)
	}
	assert.Equal(t, []string{HEAD}, names)

	names = nil
	for ref, err := range r.IterRefs("refs/tags/", false) {
		require.NoError(t, err)
		names = append(names, ref.Name)
	}
	assert.Equal(t, []string{"refs/tags/v1"}, names)
}

func TestIterRefs_EarlyStop(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, r.UpdateRef("refs/heads/a", Direct(fakeHash('1')), false))
	require.NoError(t, r.UpdateRef("refs/heads/b", Direct(fakeHash('2')), false))

	count := 0
	for _, err := range r.IterRefs("refs/heads/", false) {
		require.NoError(t, err)
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestIterRefs_ReportsMalformed(t *testing.T) {
	r := newTestRepo(t)
	writeFile(t, r, ".mygit/refs/heads/bad", "nope\n")

	var gotErr error
	for _, err := range r.IterRefs("", false) {
		if err != nil {
			gotErr = err
		}
	}
	require.ErrorIs(t, gotErr, ErrMalformedRef)
}
