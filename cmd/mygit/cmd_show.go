package main

import (
	"fmt"
	"sort"

	"github.com/loki9919/MyGit/pkg/object"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show a commit and the paths it changed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			h, err := resolveName(r, args)
			if err != nil {
				return err
			}
			c, err := r.GetCommit(h)
			if err != nil {
				return err
			}
			decorations, err := refDecorations(r)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printCommit(out, h, c, decorations[h], false)

			files, err := r.GetTree(c.TreeHash, "")
			if err != nil {
				return err
			}
			parentFiles := map[string]object.Hash{}
			if c.Parent != "" {
				pc, err := r.GetCommit(c.Parent)
				if err != nil {
					return err
				}
				if parentFiles, err = r.GetTree(pc.TreeHash, ""); err != nil {
					return err
				}
			}

			for _, change := range changedPaths(parentFiles, files) {
				fmt.Fprintf(out, "%c %s\n", change.status, change.path)
			}
			return nil
		},
	}
}

type pathChange struct {
	status byte // 'A', 'M' or 'D'
	path   string
}

// changedPaths compares two flattened trees by blob hash.
func changedPaths(from, to map[string]object.Hash) []pathChange {
	var changes []pathChange
	for p, h := range to {
		old, ok := from[p]
		switch {
		case !ok:
			changes = append(changes, pathChange{'A', p})
		case old != h:
			changes = append(changes, pathChange{'M', p})
		}
	}
	for p := range from {
		if _, ok := to[p]; !ok {
			changes = append(changes, pathChange{'D', p})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].path < changes[j].path })
	return changes
}
