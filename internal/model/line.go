package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is one of the two posting directions of a ledger line.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// EntryStatus represents the lifecycle state of a journal entry.
type EntryStatus string

const (
	StatusDraft  EntryStatus = "draft"
	StatusPosted EntryStatus = "posted"
	StatusVoid   EntryStatus = "void" // excluded from trial balance, kept for audit
)

// DefaultPrecision is the currency rounding precision in decimal places.
const DefaultPrecision int32 = 2

// Line is a single row in journal.csv (one side of a double-entry).
// Lines of the same entry share EntryID, Reference, Status and Version.
type Line struct {
	EntryID     string // internal entry id (uuid); groups lines of one entry
	Date        time.Time
	Reference   string // human-readable reference, unique within the ledger
	AccountID   int
	Description string
	Debit       decimal.Decimal // zero if credit side
	Credit      decimal.Decimal // zero if debit side
	Status      EntryStatus
	Version     int // entry version, bumped on every mutation
}

// SetDebit records a debit amount. A positive amount clears the credit
// side, keeping the one-side-per-line invariant regardless of how the
// line was constructed (form, import, API).
func (l *Line) SetDebit(amount decimal.Decimal) {
	l.Debit = amount
	if amount.IsPositive() {
		l.Credit = decimal.Zero
	}
}

// SetCredit records a credit amount, clearing the debit side if positive.
func (l *Line) SetCredit(amount decimal.Decimal) {
	l.Credit = amount
	if amount.IsPositive() {
		l.Debit = decimal.Zero
	}
}

// SetAmount records an amount on the given side.
func (l *Line) SetAmount(side Side, amount decimal.Decimal) {
	if side == SideCredit {
		l.SetCredit(amount)
		return
	}
	l.SetDebit(amount)
}

// Amount returns the non-zero side's amount, or zero if the line is empty.
func (l Line) Amount() decimal.Decimal {
	if !l.Debit.IsZero() {
		return l.Debit
	}
	return l.Credit
}

// Side returns which side the line posts to. Lines with both or neither
// side set are invalid; the validator reports them, this just picks.
func (l Line) Side() Side {
	if !l.Credit.IsZero() && l.Debit.IsZero() {
		return SideCredit
	}
	return SideDebit
}

// OneSided reports whether exactly one of debit/credit is positive.
func (l Line) OneSided() bool {
	return l.Debit.IsPositive() != l.Credit.IsPositive()
}

// Posting reports whether the line carries an account and an amount on
// exactly one side, i.e. it is a candidate for posting.
func (l Line) Posting() bool {
	return l.AccountID != 0 && l.OneSided()
}
