package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newShowRefCmd() *cobra.Command {
	var deref bool

	cmd := &cobra.Command{
		Use:   "show-ref [prefix]",
		Short: "List refs and their values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			out := cmd.OutOrStdout()
			for ref, err := range r.IterRefs(prefix, deref) {
				if err != nil {
					return err
				}
				if ref.IsUnset() {
					continue
				}
				fmt.Fprintf(out, "%s %s\n", ref.RefValue, ref.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&deref, "deref", false, "follow symbolic refs")

	return cmd
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <name>",
		Short: "Move the current branch to a commit, keeping the working directory",
		Args:  cobra.ExactArgs(1),
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
			if err := r.Reset(h); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now at %s\n", headLabel(r), shortHash(h))
			return nil
		},
	}
}

func newReflogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "reflog [ref]",
		Short: "Show ref update history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			entries, err := r.ReadReflog(ref, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range entries {
				ts := time.Unix(e.Timestamp, 0).UTC().Format(time.RFC3339)
				fmt.Fprintf(out, "%s %s %s %s\n", shortHash(e.NewHash), ts, e.Ref, e.Reason)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum entries to show")
	return cmd
}
