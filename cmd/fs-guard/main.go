// Command fs-guard captures and verifies Merkle tree snapshots
// of directory contents.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	fsguard "github.com/QuantumGerbil/fs-guard"
	"github.com/QuantumGerbil/fs-guard/fgchunk"
	"github.com/QuantumGerbil/fs-guard/fgmerkle"
	"github.com/QuantumGerbil/fs-guard/fgsha256"
	"github.com/spf13/cobra"
)

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "fs-guard",
		Short: "File integrity snapshots backed by a Merkle tree",
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "warn", "Minimum log level (debug, info, warn, error)",
	)

	log := func() *slog.Logger {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
			lvl = slog.LevelWarn
		}
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: lvl,
		}))
	}

	rootCmd.AddCommand(
		hashCmd(),
		chunkRootCmd(log),
		snapshotCmd(log),
		verifyCmd(log),
		proveCmd(log),
		verifyProofCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func hashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash [file]",
		Short: "Print the SHA-256 digest of a file, or of stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}

			d := fgsha256.Sum(data)
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(d[:]))
			return nil
		},
	}
}

func chunkRootCmd(log func() *slog.Logger) *cobra.Command {
	var chunkSize int
	var parityRatio float32

	cmd := &cobra.Command{
		Use:   "chunk-root <file>",
		Short: "Print the Merkle root over fixed-size chunks of one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			res, err := fgchunk.Split(data, fgchunk.Config{
				ChunkSize:   chunkSize,
				ParityRatio: parityRatio,
			})
			if err != nil {
				return err
			}

			tree := fgmerkle.NewTree(log(), fgmerkle.TreeConfig{
				Hasher: fgsha256.Hasher{},
			})
			tree.Build(res.Chunks)

			fmt.Fprintf(
				cmd.OutOrStdout(), "%s  (%d data + %d parity chunks)\n",
				hex.EncodeToString(tree.Root()), res.NumData, res.NumParity,
			)
			return nil
		},
	}

	cmd.Flags().IntVar(&chunkSize, "chunk-size", 4096, "Chunk size in bytes")
	cmd.Flags().Float32Var(&parityRatio, "parity", 0, "Parity chunks per data chunk (e.g. 0.25)")

	return cmd
}

func snapshotCmd(log func() *slog.Logger) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "snapshot <dir>",
		Short: "Capture a manifest of a directory's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := fsguard.Take(log(), args[0], fsguard.Config{})
			if err != nil {
				return err
			}

			b, err := fsguard.EncodeManifest(snap.Manifest())
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return err
			}

			fmt.Fprintf(
				cmd.OutOrStdout(), "%s  (%d files)\n",
				hex.EncodeToString(snap.Root()), snap.NumFiles(),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "fs-guard.manifest", "Manifest output path")

	return cmd
}

func verifyCmd(log func() *slog.Logger) *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "verify <dir>",
		Short: "Verify a directory against a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(manifestPath)
			if err != nil {
				return err
			}
			m, err := fsguard.DecodeManifest(b)
			if err != nil {
				return err
			}

			report, err := fsguard.VerifyDir(log(), args[0], m, fsguard.Config{})
			if err != nil {
				return err
			}

			if report.Clean() {
				fmt.Fprintln(cmd.OutOrStdout(), "OK")
				return nil
			}

			for _, p := range report.Modified {
				fmt.Fprintln(cmd.OutOrStdout(), "modified:", p)
			}
			for _, p := range report.Missing {
				fmt.Fprintln(cmd.OutOrStdout(), "missing:", p)
			}
			for _, p := range report.Added {
				fmt.Fprintln(cmd.OutOrStdout(), "added:", p)
			}
			if report.RootMismatch {
				fmt.Fprintln(cmd.OutOrStdout(), "manifest root does not match its leaf digests")
			}

			return fmt.Errorf("directory does not match manifest")
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "fs-guard.manifest", "Manifest path")

	return cmd
}

func proveCmd(log func() *slog.Logger) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "prove <dir> <path>",
		Short: "Generate an inclusion proof for one file of a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := fsguard.Take(log(), args[0], fsguard.Config{})
			if err != nil {
				return err
			}

			proof, ok := snap.FileProof(args[1])
			if !ok {
				return fmt.Errorf("no file %q in directory %q", args[1], args[0])
			}

			b, err := fsguard.EncodeFileProof(proof)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return err
			}

			fmt.Fprintf(
				cmd.OutOrStdout(), "root %s, %d proof entries\n",
				hex.EncodeToString(snap.Root()), len(proof.Siblings),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "fs-guard.proof", "Proof output path")

	return cmd
}

func verifyProofCmd() *cobra.Command {
	var proofPath, rootHex string

	cmd := &cobra.Command{
		Use:   "verify-proof <file>",
		Short: "Verify one file against a trusted root digest using a proof",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			b, err := os.ReadFile(proofPath)
			if err != nil {
				return err
			}
			proof, err := fsguard.DecodeFileProof(b)
			if err != nil {
				return err
			}

			root, err := hex.DecodeString(rootHex)
			if err != nil {
				return fmt.Errorf("invalid root digest: %w", err)
			}

			if !fsguard.VerifyFileProof(content, proof, root, fsguard.Config{}) {
				return fmt.Errorf("proof does not connect %q to the given root", args[0])
			}

			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}

	cmd.Flags().StringVarP(&proofPath, "proof", "p", "fs-guard.proof", "Proof path")
	cmd.Flags().StringVarP(&rootHex, "root", "r", "", "Trusted root digest, hex encoded")
	_ = cmd.MarkFlagRequired("root")

	return cmd
}
