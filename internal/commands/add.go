package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/classifier"
	"github.com/tallybook-dev/tallybook/internal/journal"
	"github.com/tallybook-dev/tallybook/internal/model"
	"github.com/tallybook-dev/tallybook/internal/policy"
)

func newAddCommand(opts *rootOptions) *cobra.Command {
	var (
		dateStr       string
		description   string
		reference     string
		account       int
		side          string
		amountStr     string
		debitAccount  int
		creditAccount int
		post          bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a journal entry",
		Long: `Add a journal entry.

Single-sided form (--account/--side/--amount) derives the offsetting line
from the configured offset accounts. Two-sided form (--debit-account/
--credit-account/--amount) writes the pair exactly as given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			led, err := openLedger(opts)
			if err != nil {
				return err
			}

			date, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fmt.Errorf("parsing --date %q: %w", dateStr, err)
			}
			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("parsing --amount %q: %w", amountStr, err)
			}

			status := model.StatusDraft
			if post {
				status = model.StatusPosted
			}

			var ref string
			switch {
			case debitAccount != 0 && creditAccount != 0:
				ref, err = led.journal.AddDouble(journal.AddDoubleParams{
					Date:          date,
					Description:   description,
					DebitAccount:  debitAccount,
					CreditAccount: creditAccount,
					Amount:        amount,
					Reference:     reference,
					Status:        status,
				})
			case account != 0:
				ref, err = addSingle(led, journal.SingleLeg{
					AccountID:   account,
					Side:        model.Side(side),
					Amount:      amount,
					Date:        date,
					Description: description,
				}, reference, status)
			default:
				return fmt.Errorf("pass either --account/--side or --debit-account/--credit-account")
			}
			if err != nil {
				return err
			}

			if err := led.maybeCommit("journal: add " + ref); err != nil {
				return err
			}

			fmt.Printf("Added entry %s\n", ref)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", time.Now().Format("2006-01-02"), "entry date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&description, "desc", "", "entry description")
	cmd.Flags().StringVar(&reference, "ref", "", "entry reference (auto-generated if blank)")
	cmd.Flags().IntVar(&account, "account", 0, "account to post a single-sided amount to")
	cmd.Flags().StringVar(&side, "side", string(model.SideDebit), "side of the single-sided amount (debit or credit)")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount (required)")
	cmd.Flags().IntVar(&debitAccount, "debit-account", 0, "debit account of a two-sided entry")
	cmd.Flags().IntVar(&creditAccount, "credit-account", 0, "credit account of a two-sided entry")
	cmd.Flags().BoolVar(&post, "post", false, "post the entry immediately instead of leaving it draft")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

// addSingle gates the requested side through the resolved policy before
// handing the leg to the auto-balancer.
func addSingle(led *ledger, leg journal.SingleLeg, reference string, status model.EntryStatus) (string, error) {
	acct, ok := led.accounts.Get(leg.AccountID)
	if !ok {
		return "", fmt.Errorf("unknown account %d", leg.AccountID)
	}

	desc := policy.Resolve(classifier.Classify(acct.Type), led.policy)
	if !desc.SideEnabled(leg.Side) {
		return "", fmt.Errorf("%ss are disabled for %s accounts (%s); pass --adjust or use a privileged role",
			leg.Side, desc.Classification, desc.Help)
	}

	return led.journal.AddSingle(leg, reference, status)
}
