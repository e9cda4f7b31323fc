package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckoutCmd() *cobra.Command {
	var createBranch bool

	cmd := &cobra.Command{
		Use:   "checkout <name>",
		Short: "Switch branches or detach HEAD at a commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]

			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			if createBranch {
				head, err := r.GetOID("@")
				if err != nil {
					return fmt.Errorf("cannot resolve HEAD: %w", err)
				}
				if err := r.CreateBranch(target, head); err != nil {
					return err
				}
			}

			branches, err := r.ListBranches()
			if err != nil {
				return err
			}
			for _, b := range branches {
				if b != target {
					continue
				}
				if err := r.SwitchBranch(target); err != nil {
					return err
				}
				if createBranch {
					fmt.Fprintf(cmd.OutOrStdout(), "switched to new branch '%s'\n", target)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "switched to branch '%s'\n", target)
				}
				return nil
			}

			h, err := r.GetOID(target)
			if err != nil {
				return err
			}
			if err := r.Checkout(h); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "HEAD is now at %s\n", shortHash(h))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&createBranch, "branch", "b", false, "create and switch to a new branch")

	return cmd
}
