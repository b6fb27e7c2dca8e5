package journal

import (
	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// TrialBalance is the summed debit/credit view of a set of lines.
// Balance is signed: debits minus credits.
type TrialBalance struct {
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	Balance      decimal.Decimal
}

// Balanced reports whether debits equal credits exactly. No epsilon:
// sub-cent drift accumulated over many lines must not be masked.
func (tb TrialBalance) Balanced() bool {
	return tb.Balance.IsZero()
}

// Aggregate reduces lines to a trial balance. Lines of void entries are
// excluded; zero-valued amounts are harmless. The reduction always runs
// over the full set — callers re-aggregate after every mutation instead
// of patching totals incrementally.
func Aggregate(lines []model.Line) TrialBalance {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		if line.Status == model.StatusVoid {
			continue
		}
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return TrialBalance{
		TotalDebits:  debits,
		TotalCredits: credits,
		Balance:      debits.Sub(credits),
	}
}
