package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/importer"
	"github.com/tallybook-dev/tallybook/internal/journal"
	"github.com/tallybook-dev/tallybook/internal/model"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var format string
	var account int

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import bank CSV files from the import/ directory",
		Long: `Import bank CSV files from the import/ directory.

Each bank row becomes a single-sided line on the bank account (money out
credits it, money in debits it); the offsetting line comes from the
configured offset accounts. Imported entries stay drafts for review.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			led, err := openLedger(opts)
			if err != nil {
				return err
			}

			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown import format %q", format)
			}
			if !led.accounts.IsActive(account) {
				return fmt.Errorf("bank account %d is unknown or inactive", account)
			}

			files, err := importer.Scan(led.dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println("Nothing to import")
				return nil
			}

			imported := 0
			for _, file := range files {
				n, err := importFile(led, parser, file, account)
				if err != nil {
					return fmt.Errorf("importing %s: %w", file.Name, err)
				}
				if err := importer.MarkProcessed(led.dir, file.Name); err != nil {
					return err
				}
				imported += n
			}

			if err := led.maybeCommit(fmt.Sprintf("journal: import %d entries", imported)); err != nil {
				return err
			}

			fmt.Printf("Imported %d entries from %d file(s)\n", imported, len(files))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "chase", "bank CSV format")
	cmd.Flags().IntVar(&account, "account", 0, "bank account id the file belongs to (required)")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func importFile(led *ledger, parser importer.Parser, file importer.FileInfo, account int) (int, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	txns, err := parser.Parse(f)
	if err != nil {
		return 0, err
	}

	for _, txn := range txns {
		side := model.SideDebit
		amount := txn.Amount
		if amount.IsNegative() {
			side = model.SideCredit
			amount = amount.Neg()
		}

		_, err := led.journal.AddSingle(journal.SingleLeg{
			AccountID:   account,
			Side:        side,
			Amount:      amount,
			Date:        txn.Date,
			Description: txn.Description,
		}, txn.Reference, model.StatusDraft)
		if err != nil {
			return 0, err
		}
	}
	return len(txns), nil
}
