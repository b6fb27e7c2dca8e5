package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/journal"
	"github.com/tallybook-dev/tallybook/internal/model"
)

func newCheckCommand(opts *rootOptions) *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a month's journal against the double-entry invariants",
		RunE: func(cmd *cobra.Command, args []string) error {
			led, err := openLedger(opts)
			if err != nil {
				return err
			}

			lines, err := led.journal.ReadMonth(year, month)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				fmt.Printf("No entries for %04d-%02d\n", year, month)
				return nil
			}

			problems := 0
			groups := groupByReference(lines)
			refs := make([]string, 0, len(groups))
			for ref := range groups {
				refs = append(refs, ref)
			}
			sort.Strings(refs)

			for _, ref := range refs {
				res := journal.Validate(groups[ref], led.accounts, journal.Options{
					Strict:    true,
					Precision: led.cfg.Precision,
				})
				for _, p := range res.Problems {
					problems++
					fmt.Printf("%s: %s\n", ref, p.Message)
				}
			}

			tb := journal.Aggregate(lines)
			fmt.Printf("Total debits:  %s\n", tb.TotalDebits.StringFixed(2))
			fmt.Printf("Total credits: %s\n", tb.TotalCredits.StringFixed(2))
			if !tb.Balanced() {
				problems++
				fmt.Printf("Month out of balance by %s\n", tb.Balance.StringFixed(2))
			}

			if problems > 0 {
				return fmt.Errorf("%d problem(s) found", problems)
			}
			fmt.Println("OK")
			return nil
		},
	}

	now := time.Now()
	cmd.Flags().IntVar(&year, "year", now.Year(), "year to check")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "month to check")

	return cmd
}

// groupByReference buckets a month's lines into entries.
func groupByReference(lines []model.Line) map[string][]model.Line {
	groups := make(map[string][]model.Line)
	for _, line := range lines {
		groups[line.Reference] = append(groups[line.Reference], line)
	}
	return groups
}
