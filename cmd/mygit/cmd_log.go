package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/loki9919/MyGit/pkg/object"
	"github.com/loki9919/MyGit/pkg/repo"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	var oneline bool
	var limit int

	cmd := &cobra.Command{
		Use:   "log [name]",
		Short: "Show commit history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			start, err := resolveName(r, args)
			if err != nil {
				return err
			}
			decorations, err := refDecorations(r)
			if err != nil {
				return err
			}

			entries, err := r.Log(start, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				printCommit(out, e.Hash, e.Commit, decorations[e.Hash], oneline)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&oneline, "oneline", false, "compact one-line format")
	cmd.Flags().IntVarP(&limit, "max-count", "n", 0, "limit number of commits")

	return cmd
}

func printCommit(out io.Writer, h object.Hash, c *object.CommitObj, refs []string, oneline bool) {
	decoration := ""
	if len(refs) > 0 {
		decoration = " (" + strings.Join(refs, ", ") + ")"
	}

	if oneline {
		subject, _, _ := strings.Cut(c.Message, "\n")
		fmt.Fprintf(out, "%s%s %s\n", shortHash(h), decoration, subject)
		return
	}

	fmt.Fprintf(out, "commit %s%s\n", h, decoration)
	fmt.Fprintln(out)
	for _, line := range strings.Split(c.Message, "\n") {
		fmt.Fprintf(out, "    %s\n", line)
	}
	fmt.Fprintln(out)
}

// refDecorations maps commit hashes to the short names of the refs that
// point at them. HEAD is listed first.
func refDecorations(r *repo.Repo) (map[object.Hash][]string, error) {
	out := make(map[object.Hash][]string)
	var names []string
	targets := make(map[string]object.Hash)
	for ref, err := range r.IterRefs("", true) {
		if err != nil {
			return nil, err
		}
		if ref.IsUnset() {
			continue
		}
		names = append(names, ref.Name)
		targets[ref.Name] = ref.Hash()
	}

	if head, err := r.GetRef(repo.HEAD, true); err == nil && !head.IsUnset() {
		out[head.Hash()] = append(out[head.Hash()], repo.HEAD)
	}
	sort.Strings(names)
	seen := make(map[string]bool)
	for _, name := range names {
		if name == repo.HEAD || seen[name] {
			continue
		}
		seen[name] = true
		h := targets[name]
		out[h] = append(out[h], shortRefName(name))
	}
	return out, nil
}

func shortRefName(name string) string {
	for _, prefix := range []string{"refs/heads/", "refs/tags/", "refs/"} {
		if strings.HasPrefix(name, prefix) {
			if prefix == "refs/tags/" {
				return "tag: " + strings.TrimPrefix(name, prefix)
			}
			return strings.TrimPrefix(name, prefix)
		}
	}
	return name
}
