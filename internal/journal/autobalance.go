package journal

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/classifier"
	"github.com/tallybook-dev/tallybook/internal/model"
)

// Intent is the semantic direction of a transaction, derived from the
// posted account's classification and the side used.
type Intent string

const (
	IntentMoneySpent        Intent = "money_spent"        // debit to expense
	IntentExpenseReversed   Intent = "expense_reversed"   // credit to expense
	IntentMoneyReceived     Intent = "money_received"     // credit to revenue
	IntentRefundIssued      Intent = "refund_issued"      // debit to revenue
	IntentAssetAcquired     Intent = "asset_acquired"     // debit to asset
	IntentAssetReleased     Intent = "asset_released"     // credit to asset
	IntentLiabilitySettled  Intent = "liability_settled"  // debit to liability
	IntentLiabilityIncurred Intent = "liability_incurred" // credit to liability
	IntentEquityDrawn       Intent = "equity_drawn"       // debit to equity
	IntentEquityContributed Intent = "equity_contributed" // credit to equity
	IntentUncategorized     Intent = "uncategorized"      // unknown classification
)

// IntentOf maps (classification, side) onto the conventional transaction
// intent.
func IntentOf(class classifier.Classification, side model.Side) Intent {
	debit := side == model.SideDebit
	switch class {
	case classifier.ClassExpense:
		if debit {
			return IntentMoneySpent
		}
		return IntentExpenseReversed
	case classifier.ClassRevenue:
		if debit {
			return IntentRefundIssued
		}
		return IntentMoneyReceived
	case classifier.ClassAsset:
		if debit {
			return IntentAssetAcquired
		}
		return IntentAssetReleased
	case classifier.ClassLiability:
		if debit {
			return IntentLiabilitySettled
		}
		return IntentLiabilityIncurred
	case classifier.ClassEquity:
		if debit {
			return IntentEquityDrawn
		}
		return IntentEquityContributed
	}
	return IntentUncategorized
}

// OffsetPolicy selects the counter-account for an auto-balanced entry.
// Selection is configuration, not a hardcoded guess: a per-intent table
// with a default clearing account fallback.
type OffsetPolicy struct {
	DefaultAccount int
	ByIntent       map[Intent]int
}

// AccountFor resolves the offset account for an intent.
func (p OffsetPolicy) AccountFor(intent Intent) (int, bool) {
	if id, ok := p.ByIntent[intent]; ok && id != 0 {
		return id, true
	}
	if p.DefaultAccount != 0 {
		return p.DefaultAccount, true
	}
	return 0, false
}

// OffsetConfigError reports that no offset account is configured for an
// intent. This is a setup problem, not a bad entry, and is surfaced as a
// distinct type so callers can tell the two apart.
type OffsetConfigError struct {
	Intent Intent
}

func (e *OffsetConfigError) Error() string {
	return fmt.Sprintf("no offset account configured for intent %q (set offsets.default_account or offsets.by_intent in tallybook.yaml)", e.Intent)
}

// SingleLeg is one user-declared side of a transaction awaiting its
// offsetting line.
type SingleLeg struct {
	AccountID   int
	Side        model.Side
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

// AutoBalance expands a single leg into a balanced pair of lines: the
// user's leg plus an offsetting line for the same amount on the opposite
// side, against the policy-selected counter-account. The result always
// satisfies the strict balance invariant; when it can't, an error is
// returned and nothing is persistable.
func AutoBalance(leg SingleLeg, accounts AccountResolver, offsets OffsetPolicy) ([]model.Line, error) {
	if !leg.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive, got %s", leg.Amount)
	}

	acct, ok := accounts.Get(leg.AccountID)
	if !ok {
		return nil, fmt.Errorf("unknown account %d", leg.AccountID)
	}
	if !acct.Active {
		return nil, fmt.Errorf("account %s is inactive", acct.Label())
	}

	intent := IntentOf(classifier.Normalize(acct.Type), leg.Side)
	offsetID, ok := offsets.AccountFor(intent)
	if !ok {
		return nil, &OffsetConfigError{Intent: intent}
	}

	offsetAcct, ok := accounts.Get(offsetID)
	if !ok {
		return nil, fmt.Errorf("configured offset account %d for intent %q does not exist", offsetID, intent)
	}
	if !offsetAcct.Active {
		return nil, fmt.Errorf("configured offset account %s is inactive", offsetAcct.Label())
	}
	if offsetID == leg.AccountID {
		return nil, fmt.Errorf("offset account for intent %q resolves to the posted account %s", intent, acct.Label())
	}

	user := model.Line{
		Date:        leg.Date,
		AccountID:   leg.AccountID,
		Description: leg.Description,
		Status:      model.StatusDraft,
	}
	user.SetAmount(leg.Side, leg.Amount)

	offset := model.Line{
		Date:        leg.Date,
		AccountID:   offsetID,
		Description: leg.Description,
		Status:      model.StatusDraft,
	}
	offset.SetAmount(opposite(leg.Side), leg.Amount)

	return []model.Line{user, offset}, nil
}

func opposite(side model.Side) model.Side {
	if side == model.SideDebit {
		return model.SideCredit
	}
	return model.SideDebit
}
