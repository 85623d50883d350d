package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate a fixture file without contacting the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := loadFixtures(root.file)
			if err != nil {
				return err
			}
			books, err := validateFixtures(f)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d books and %d reviews are valid\n", root.file, len(books), countReviews(books))
			return nil
		},
	}
}
