// Package classifier maps free-text account categories onto the five
// canonical classifications and derives the debit/credit behavior each
// classification implies. Everything here is pure computation; policy
// overrides are layered on top by the policy package.
package classifier

import (
	"strings"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// Classification is the canonical account category.
type Classification string

const (
	ClassAsset     Classification = "asset"
	ClassLiability Classification = "liability"
	ClassEquity    Classification = "equity"
	ClassRevenue   Classification = "revenue"
	ClassExpense   Classification = "expense"

	// ClassUnknown is the explicit fallback for unrecognized categories.
	// Unknown types must not block data entry, so its descriptor is
	// fully permissive.
	ClassUnknown Classification = "unknown"
)

// aliases maps normalized category strings that don't literally name a
// classification onto their canonical one.
var aliases = map[string]Classification{
	"income":             ClassRevenue,
	"sales":              ClassRevenue,
	"sales revenue":      ClassRevenue,
	"other income":       ClassRevenue,
	"cogs":               ClassExpense,
	"cost of sales":      ClassExpense,
	"cost of goods sold": ClassExpense,
	"expenditure":        ClassExpense,
	"capital":            ClassEquity,
	"owner equity":       ClassEquity,
	"owner's equity":     ClassEquity,
	"debt":               ClassLiability,
	"payable":            ClassLiability,
	"receivable":         ClassAsset,
}

// Normalize folds a raw category string ("Current Assets", "Other Income",
// "COGS") into a Classification. Unrecognized strings normalize to
// ClassUnknown, never an error.
func Normalize(raw string) Classification {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ClassUnknown
	}

	if c, ok := lookup(s); ok {
		return c
	}

	// Qualifiers like "current asset" or "fixed assets" classify by
	// their last word.
	words := strings.Fields(s)
	if c, ok := lookup(words[len(words)-1]); ok {
		return c
	}

	return ClassUnknown
}

func lookup(s string) (Classification, bool) {
	for _, candidate := range []string{s, singular(s)} {
		switch Classification(candidate) {
		case ClassAsset, ClassLiability, ClassEquity, ClassRevenue, ClassExpense:
			return Classification(candidate), true
		}
		if c, ok := aliases[candidate]; ok {
			return c, true
		}
	}
	return ClassUnknown, false
}

// singular strips simple English pluralization ("liabilities" -> "liability",
// "assets" -> "asset").
func singular(s string) string {
	switch {
	case strings.HasSuffix(s, "ies"):
		return strings.TrimSuffix(s, "ies") + "y"
	case strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss"):
		return strings.TrimSuffix(s, "s")
	}
	return s
}

// Descriptor describes how an account may be posted to: which sides are
// enabled, what each side means, and which side the balance normally
// sits on. Derived on demand, never persisted.
type Descriptor struct {
	Classification Classification
	DebitEnabled   bool
	CreditEnabled  bool
	NormalSide     model.Side
	DebitLabel     string
	CreditLabel    string
	Help           string
}

// SideEnabled reports whether posting on the given side is allowed.
func (d Descriptor) SideEnabled(side model.Side) bool {
	if side == model.SideCredit {
		return d.CreditEnabled
	}
	return d.DebitEnabled
}

// Describe returns the default (unrestricted-mode) behavior for a
// classification. Revenue debits and expense credits are reversals and
// stay disabled until policy enables them.
func Describe(class Classification) Descriptor {
	switch class {
	case ClassAsset:
		return Descriptor{
			Classification: ClassAsset,
			DebitEnabled:   true,
			CreditEnabled:  true,
			NormalSide:     model.SideDebit,
			DebitLabel:     "Increase (money in)",
			CreditLabel:    "Decrease (money out)",
			Help:           "Assets normally carry a debit balance.",
		}
	case ClassLiability:
		return Descriptor{
			Classification: ClassLiability,
			DebitEnabled:   true,
			CreditEnabled:  true,
			NormalSide:     model.SideCredit,
			DebitLabel:     "Decrease (paid down)",
			CreditLabel:    "Increase (newly owed)",
			Help:           "Liabilities normally carry a credit balance.",
		}
	case ClassEquity:
		return Descriptor{
			Classification: ClassEquity,
			DebitEnabled:   true,
			CreditEnabled:  true,
			NormalSide:     model.SideCredit,
			DebitLabel:     "Decrease (drawings)",
			CreditLabel:    "Increase (contributions)",
			Help:           "Equity normally carries a credit balance.",
		}
	case ClassRevenue:
		return Descriptor{
			Classification: ClassRevenue,
			DebitEnabled:   false,
			CreditEnabled:  true,
			NormalSide:     model.SideCredit,
			DebitLabel:     "Refund/Reversal",
			CreditLabel:    "Revenue earned",
			Help:           "Revenue is recorded as a credit; debits are reserved for refunds and reversals.",
		}
	case ClassExpense:
		return Descriptor{
			Classification: ClassExpense,
			DebitEnabled:   true,
			CreditEnabled:  false,
			NormalSide:     model.SideDebit,
			DebitLabel:     "Expense incurred",
			CreditLabel:    "Reversal",
			Help:           "Expenses are recorded as debits; credits are reserved for reversals.",
		}
	default:
		return Descriptor{
			Classification: ClassUnknown,
			DebitEnabled:   true,
			CreditEnabled:  true,
			NormalSide:     model.SideDebit,
			DebitLabel:     "Debit",
			CreditLabel:    "Credit",
			Help:           "Unrecognized account type; both sides are allowed.",
		}
	}
}

// Classify is the normalize-then-describe composition used per line.
func Classify(rawCategory string) Descriptor {
	return Describe(Normalize(rawCategory))
}
