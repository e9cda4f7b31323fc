package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/loki9919/MyGit/pkg/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var branch string
	var hashAlg string
	var noCompress bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty mygit repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			abs, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			// Ensure the target directory exists.
			if err := os.MkdirAll(abs, 0o755); err != nil {
				return fmt.Errorf("create directory: %w", err)
			}

			cfg := repo.DefaultConfig()
			if hashAlg != "" {
				cfg.Core.Hash = hashAlg
			}
			if noCompress {
				cfg.Core.Compression = repo.CompressionNone
			}

			r, err := repo.InitDir(abs, cfg)
			if err != nil {
				return err
			}
			defer r.Close()
			if branch != "" {
				if err := r.UpdateRef(repo.HEAD, repo.Symbolic("refs/heads/"+branch), false); err != nil {
					return err
				}
			}
			logger.Printf("config: hash=%s compression=%s", cfg.Core.Hash, cfg.Core.Compression)

			fmt.Fprintf(cmd.OutOrStdout(), "initialized empty mygit repository in %s\n", filepath.Join(r.RootDir, repo.DirName)+string(filepath.Separator))
			return nil
		},
	}

	cmd.Flags().StringVarP(&branch, "initial-branch", "b", "main", "branch HEAD points at; empty leaves HEAD unset")
	cmd.Flags().StringVar(&hashAlg, "object-hash", "", "object hash algorithm (sha1 or blake2b-160)")
	cmd.Flags().BoolVar(&noCompress, "no-compress", false, "store objects uncompressed")

	return cmd
}
