package journal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// ProblemKind classifies a validation problem. Structural and
// inactive-account problems are fixed by editing lines; an imbalance is
// fixed by the auto-balancer or a manual correction.
type ProblemKind string

const (
	ProblemNoValidLine     ProblemKind = "no_valid_line"
	ProblemUnknownAccount  ProblemKind = "unknown_account"
	ProblemInactiveAccount ProblemKind = "inactive_account"
	ProblemBothSides       ProblemKind = "both_sides"
	ProblemNegativeAmount  ProblemKind = "negative_amount"
	ProblemPrecision       ProblemKind = "precision"
	ProblemImbalance       ProblemKind = "imbalance"
)

// Problem describes a single validation failure. Problems are values,
// not errors; expected validation failures never panic or throw.
type Problem struct {
	Kind    ProblemKind
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Kind, p.Message)
}

// AccountResolver looks up accounts in the chart of accounts.
type AccountResolver interface {
	Get(id int) (model.Account, bool)
}

// Options controls validation behavior.
type Options struct {
	// Strict requires total debits to equal total credits exactly, as for
	// a multi-line manual journal entry submission.
	Strict bool
	// Precision is the maximum number of decimal places an amount may
	// carry. Zero means model.DefaultPrecision.
	Precision int32
}

// Result is the outcome of validating a set of lines. Totals are always
// computed, valid or not, so callers can render partial state.
type Result struct {
	Valid        bool
	Problems     []Problem
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
}

// Imbalance returns the signed difference debits minus credits.
func (r Result) Imbalance() decimal.Decimal {
	return r.TotalDebits.Sub(r.TotalCredits)
}

// Messages returns all problem messages, for error reporting.
func (r Result) Messages() []string {
	msgs := make([]string, len(r.Problems))
	for i, p := range r.Problems {
		msgs[i] = p.Message
	}
	return msgs
}

// Validate checks a set of journal lines against the double-entry
// invariants. All applicable problems are accumulated rather than
// short-circuiting on the first. The input is never mutated and the check
// has no side effects, so it is safe to run on every field change.
func Validate(lines []model.Line, accounts AccountResolver, opts Options) Result {
	precision := opts.Precision
	if precision == 0 {
		precision = model.DefaultPrecision
	}

	res := Result{
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}

	postable := 0
	var inactive []string
	var unknown []string
	seenInactive := map[int]bool{}
	seenUnknown := map[int]bool{}

	for i, line := range lines {
		res.TotalDebits = res.TotalDebits.Add(line.Debit)
		res.TotalCredits = res.TotalCredits.Add(line.Credit)

		if line.Posting() {
			postable++
		}

		if line.Debit.IsPositive() && line.Credit.IsPositive() {
			res.Problems = append(res.Problems, Problem{
				Kind:    ProblemBothSides,
				Message: fmt.Sprintf("line %d has both a debit and a credit amount", i+1),
			})
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			res.Problems = append(res.Problems, Problem{
				Kind:    ProblemNegativeAmount,
				Message: fmt.Sprintf("line %d has a negative amount", i+1),
			})
		}

		for _, amount := range []decimal.Decimal{line.Debit, line.Credit} {
			if !amount.IsZero() && !exactTo(amount, precision) {
				res.Problems = append(res.Problems, Problem{
					Kind:    ProblemPrecision,
					Message: fmt.Sprintf("line %d amount %s has more than %d decimal places", i+1, amount, precision),
				})
			}
		}

		// Account checks apply to lines carrying an amount.
		if line.AccountID == 0 || line.Amount().IsZero() {
			continue
		}
		acct, ok := accounts.Get(line.AccountID)
		switch {
		case !ok:
			if !seenUnknown[line.AccountID] {
				seenUnknown[line.AccountID] = true
				unknown = append(unknown, fmt.Sprintf("%d", line.AccountID))
			}
		case !acct.Active:
			if !seenInactive[line.AccountID] {
				seenInactive[line.AccountID] = true
				inactive = append(inactive, acct.Label())
			}
		}
	}

	if postable == 0 {
		res.Problems = append(res.Problems, Problem{
			Kind:    ProblemNoValidLine,
			Message: "no line has both an account and an amount on exactly one side",
		})
	}
	if len(unknown) > 0 {
		res.Problems = append(res.Problems, Problem{
			Kind:    ProblemUnknownAccount,
			Message: "unknown accounts referenced: " + strings.Join(unknown, ", "),
		})
	}
	// One aggregated problem listing every inactive account, not one per line.
	if len(inactive) > 0 {
		res.Problems = append(res.Problems, Problem{
			Kind:    ProblemInactiveAccount,
			Message: "inactive accounts referenced: " + strings.Join(inactive, ", "),
		})
	}

	if opts.Strict {
		if delta := res.Imbalance(); !delta.IsZero() {
			res.Problems = append(res.Problems, Problem{
				Kind: ProblemImbalance,
				Message: fmt.Sprintf("debits (%s) and credits (%s) differ by %s",
					res.TotalDebits.StringFixed(precision),
					res.TotalCredits.StringFixed(precision),
					delta.StringFixed(precision)),
			})
		}
	}

	res.Valid = len(res.Problems) == 0
	return res
}

// exactTo reports whether d has no more than the given decimal places.
// Value-based, so "10.120" counts as two places.
func exactTo(d decimal.Decimal, places int32) bool {
	scaled := d.Mul(decimal.New(1, places))
	return scaled.Equal(scaled.Truncate(0))
}
