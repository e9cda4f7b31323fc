package main

import (
	"io"
	"log"
	"strings"

	"github.com/loki9919/MyGit/pkg/object"
	"github.com/loki9919/MyGit/pkg/repo"
)

// logger carries operational messages; it is silent unless --verbose is set.
var logger = log.New(io.Discard, "mygit: ", 0)

func setVerbose(on bool, w io.Writer) {
	if on {
		logger.SetOutput(w)
		return
	}
	logger.SetOutput(io.Discard)
}

func openRepo() (*repo.Repo, error) {
	r, err := repo.Discover(".")
	if err != nil {
		return nil, err
	}
	logger.Printf("repository at %s (hash %s, compression %s)", r.RootDir, r.Config.Core.Hash, r.Config.Core.Compression)
	return r, nil
}

// resolveName maps a user-supplied name to a hash, defaulting to HEAD.
func resolveName(r *repo.Repo, args []string) (object.Hash, error) {
	name := "@"
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		name = strings.TrimSpace(args[0])
	}
	h, err := r.GetOID(name)
	if err != nil {
		return "", err
	}
	logger.Printf("resolved %q to %s", name, h)
	return h, nil
}

func shortHash(h object.Hash) string {
	s := string(h)
	if len(s) > 8 {
		s = s[:8]
	}
	return s
}

// headLabel names what HEAD points at for messages: the branch, or "HEAD"
// when detached.
func headLabel(r *repo.Repo) string {
	branch, err := r.CurrentBranch()
	if err != nil || branch == "" {
		return repo.HEAD
	}
	return branch
}
