// Package main provides the seed CLI, which loads book and review fixtures
// from YAML into a running API server.
//
// Usage:
//
//	seed check --file fixtures.yaml
//	seed books --file fixtures.yaml --api http://localhost:4000
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	file     string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load book and review fixtures into the book reviews API",
		Long: `seed reads a YAML fixture of books, each with optional nested reviews.

Every entry is validated locally with the same value objects the server
uses before anything is sent, so a bad fixture never half-loads.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "fixtures.yaml", "Path to the YAML fixture file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug|info|warn|error)")

	cmd.AddCommand(newCheckCmd(opts), newBooksCmd(opts))
	return cmd
}
