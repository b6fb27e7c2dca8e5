package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/journal"
)

func newTrialBalanceCommand(opts *rootOptions) *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Show summed debits, credits and the ledger balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			led, err := openLedger(opts)
			if err != nil {
				return err
			}

			var tb journal.TrialBalance
			if year != 0 && month != 0 {
				tb, err = led.journal.TrialBalanceMonth(year, month)
			} else {
				tb, err = led.journal.TrialBalanceAll()
			}
			if err != nil {
				return err
			}

			fmt.Printf("Total debits:  %s\n", tb.TotalDebits.StringFixed(2))
			fmt.Printf("Total credits: %s\n", tb.TotalCredits.StringFixed(2))
			fmt.Printf("Balance:       %s\n", tb.Balance.StringFixed(2))
			if !tb.Balanced() {
				return fmt.Errorf("ledger out of balance by %s", tb.Balance.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "limit to a year (with --month)")
	cmd.Flags().IntVar(&month, "month", 0, "limit to a month (with --year)")

	return cmd
}
