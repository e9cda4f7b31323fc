package main

import (
	"fmt"

	"github.com/loki9919/MyGit/pkg/repo"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show working tree changes against HEAD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			entries, err := r.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			head, err := r.GetRef(repo.HEAD, true)
			if err != nil {
				return err
			}
			if head.IsUnset() {
				fmt.Fprintf(out, "on %s (no commits yet)\n", headLabel(r))
			} else {
				fmt.Fprintf(out, "on %s\n", headLabel(r))
			}

			for _, e := range entries {
				switch e.Status {
				case repo.StatusNew:
					fmt.Fprintf(out, "  + %s\n", e.Path)
				case repo.StatusModified:
					fmt.Fprintf(out, "  ~ %s\n", e.Path)
				case repo.StatusDeleted:
					fmt.Fprintf(out, "  - %s\n", e.Path)
				}
			}
			return nil
		},
	}
}
