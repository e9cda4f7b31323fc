package main

import (
	"fmt"
	"os"

	"github.com/loki9919/MyGit/pkg/object"
	"github.com/spf13/cobra"
)

func newHashObjectCmd() *cobra.Command {
	var objType string

	cmd := &cobra.Command{
		Use:   "hash-object <file>",
		Short: "Store a file as an object and print its hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			h, err := r.HashObject(object.ObjectType(objType), data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().StringVarP(&objType, "type", "t", string(object.TypeBlob), "object type")

	return cmd
}

func newCatFileCmd() *cobra.Command {
	var showType bool
	var expected string

	cmd := &cobra.Command{
		Use:   "cat-file <object>",
		Short: "Print the content of an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			_, typ, data, err := r.CatFile(args[0], object.ObjectType(expected))
			if err != nil {
				return err
			}
			if showType {
				fmt.Fprintln(cmd.OutOrStdout(), typ)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVarP(&showType, "show-type", "t", false, "print the object type instead of its content")
	cmd.Flags().StringVar(&expected, "expect", "", "fail unless the object has this type")

	return cmd
}

func newWriteTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write-tree",
		Short: "Snapshot the working directory as a tree object",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()
			h, err := r.WriteTree(".")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}

func newReadTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-tree <tree>",
		Short: "Replace the working directory with a tree",
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
			return r.ReadTree(h)
		},
	}
}
