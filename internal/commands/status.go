package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPostCommand(opts *rootOptions) *cobra.Command {
	var version int

	cmd := &cobra.Command{
		Use:   "post <reference>",
		Short: "Post a draft entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			led, err := openLedger(opts)
			if err != nil {
				return err
			}
			if err := led.journal.Post(args[0], version); err != nil {
				return err
			}
			if err := led.maybeCommit("journal: post " + args[0]); err != nil {
				return err
			}
			fmt.Printf("Posted %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().IntVar(&version, "version", 0, "expected entry version (0 skips the check)")
	return cmd
}

func newVoidCommand(opts *rootOptions) *cobra.Command {
	var version int

	cmd := &cobra.Command{
		Use:   "void <reference>",
		Short: "Void an entry, keeping it on file for audit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			led, err := openLedger(opts)
			if err != nil {
				return err
			}
			if err := led.journal.Void(args[0], version); err != nil {
				return err
			}
			if err := led.maybeCommit("journal: void " + args[0]); err != nil {
				return err
			}
			fmt.Printf("Voided %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().IntVar(&version, "version", 0, "expected entry version (0 skips the check)")
	return cmd
}

func newDeleteCommand(opts *rootOptions) *cobra.Command {
	var version int

	cmd := &cobra.Command{
		Use:   "delete <reference>",
		Short: "Delete a draft entry and all its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			led, err := openLedger(opts)
			if err != nil {
				return err
			}
			if err := led.journal.Delete(args[0], version); err != nil {
				return err
			}
			if err := led.maybeCommit("journal: delete " + args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().IntVar(&version, "version", 0, "expected entry version (0 skips the check)")
	return cmd
}
