package journal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// mockAccounts implements AccountResolver for testing.
type mockAccounts struct {
	accounts map[int]model.Account
}

func (m *mockAccounts) Get(id int) (model.Account, bool) {
	a, ok := m.accounts[id]
	return a, ok
}

func newMockAccounts(accounts ...model.Account) *mockAccounts {
	m := &mockAccounts{accounts: make(map[int]model.Account)}
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
	return m
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func defaultAccounts() *mockAccounts {
	return newMockAccounts(
		model.Account{ID: 1010, Code: "1010", Name: "Business Checking", Type: "asset", Active: true},
		model.Account{ID: 1090, Code: "1090", Name: "Cash Clearing", Type: "asset", Active: true},
		model.Account{ID: 2010, Code: "2010", Name: "Credit Card", Type: "liability", Active: true},
		model.Account{ID: 4010, Code: "4010", Name: "Service Revenue", Type: "income", Active: true},
		model.Account{ID: 5020, Code: "5020", Name: "Software & SaaS", Type: "expense", Active: true},
		model.Account{ID: 1040, Code: "1040", Name: "Old Savings", Type: "asset", Active: false},
	)
}

func debitLine(account int, amount string) model.Line {
	l := model.Line{AccountID: account, Status: model.StatusDraft}
	l.SetDebit(dec(amount))
	return l
}

func creditLine(account int, amount string) model.Line {
	l := model.Line{AccountID: account, Status: model.StatusDraft}
	l.SetCredit(dec(amount))
	return l
}

func hasProblem(res Result, kind ProblemKind) bool {
	for _, p := range res.Problems {
		if p.Kind == kind {
			return true
		}
	}
	return false
}

func TestValidate_BalancedPair(t *testing.T) {
	// {asset debit 75.25} + {liability credit 75.25} is valid and balanced.
	lines := []model.Line{debitLine(1010, "75.25"), creditLine(2010, "75.25")}
	res := Validate(lines, defaultAccounts(), Options{Strict: true})

	assert.True(t, res.Valid)
	assert.Empty(t, res.Problems)
	assert.True(t, res.Imbalance().IsZero())
	assert.True(t, res.TotalDebits.Equal(dec("75.25")))
	assert.True(t, res.TotalCredits.Equal(dec("75.25")))
}

func TestValidate_SingleLegImbalance(t *testing.T) {
	// A lone 100.00 debit reports a signed imbalance of 100.00.
	lines := []model.Line{debitLine(1010, "100.00")}
	res := Validate(lines, defaultAccounts(), Options{Strict: true})

	assert.False(t, res.Valid)
	require.True(t, hasProblem(res, ProblemImbalance))
	assert.True(t, res.Imbalance().Equal(dec("100.00")))

	var msg string
	for _, p := range res.Problems {
		if p.Kind == ProblemImbalance {
			msg = p.Message
		}
	}
	assert.Contains(t, msg, "100.00")
}

func TestValidate_ImbalanceSignedNegative(t *testing.T) {
	lines := []model.Line{creditLine(2010, "40.00")}
	res := Validate(lines, defaultAccounts(), Options{Strict: true})
	assert.True(t, res.Imbalance().Equal(dec("-40.00")))
}

func TestValidate_NoValidLine(t *testing.T) {
	res := Validate([]model.Line{{}, {AccountID: 1010}}, defaultAccounts(), Options{})
	assert.False(t, res.Valid)
	assert.True(t, hasProblem(res, ProblemNoValidLine))
	assert.True(t, res.TotalDebits.IsZero())
	assert.True(t, res.TotalCredits.IsZero())
}

func TestValidate_EmptyLines(t *testing.T) {
	res := Validate(nil, defaultAccounts(), Options{})
	assert.False(t, res.Valid)
	assert.True(t, hasProblem(res, ProblemNoValidLine))
}

func TestValidate_InactiveAccount(t *testing.T) {
	// Totals still computed; the problem names the account's code and name.
	lines := []model.Line{creditLine(1040, "50.00")}
	res := Validate(lines, defaultAccounts(), Options{})

	assert.False(t, res.Valid)
	require.True(t, hasProblem(res, ProblemInactiveAccount))
	assert.True(t, res.TotalCredits.Equal(dec("50.00")))

	var msg string
	for _, p := range res.Problems {
		if p.Kind == ProblemInactiveAccount {
			msg = p.Message
		}
	}
	assert.Contains(t, msg, "1040")
	assert.Contains(t, msg, "Old Savings")
}

func TestValidate_InactiveAccountsAggregated(t *testing.T) {
	accts := defaultAccounts()
	accts.accounts[1050] = model.Account{ID: 1050, Code: "1050", Name: "Closed Card", Type: "liability", Active: false}

	lines := []model.Line{
		creditLine(1040, "10.00"),
		creditLine(1040, "15.00"),
		debitLine(1050, "25.00"),
	}
	res := Validate(lines, accts, Options{})

	count := 0
	var msg string
	for _, p := range res.Problems {
		if p.Kind == ProblemInactiveAccount {
			count++
			msg = p.Message
		}
	}
	assert.Equal(t, 1, count, "one aggregated problem, not one per line")
	assert.Contains(t, msg, "Old Savings")
	assert.Contains(t, msg, "Closed Card")
}

func TestValidate_UnknownAccount(t *testing.T) {
	lines := []model.Line{debitLine(9999, "10.00"), creditLine(1010, "10.00")}
	res := Validate(lines, defaultAccounts(), Options{})
	assert.True(t, hasProblem(res, ProblemUnknownAccount))
}

func TestValidate_BothSides(t *testing.T) {
	line := model.Line{AccountID: 1010, Debit: dec("10.00"), Credit: dec("10.00")}
	res := Validate([]model.Line{line}, defaultAccounts(), Options{})
	assert.True(t, hasProblem(res, ProblemBothSides))
}

func TestValidate_NegativeAmount(t *testing.T) {
	line := model.Line{AccountID: 1010, Debit: dec("-5.00")}
	res := Validate([]model.Line{line}, defaultAccounts(), Options{})
	assert.True(t, hasProblem(res, ProblemNegativeAmount))
}

func TestValidate_Precision(t *testing.T) {
	lines := []model.Line{debitLine(5020, "10.123"), creditLine(1010, "10.123")}
	res := Validate(lines, defaultAccounts(), Options{Strict: true})
	assert.True(t, hasProblem(res, ProblemPrecision))

	// Trailing zeros are fine: 10.120 is a two-place value.
	lines = []model.Line{debitLine(5020, "10.120"), creditLine(1010, "10.12")}
	res = Validate(lines, defaultAccounts(), Options{Strict: true})
	assert.True(t, res.Valid)
}

func TestValidate_NonStrictSkipsBalance(t *testing.T) {
	lines := []model.Line{debitLine(1010, "100.00")}
	res := Validate(lines, defaultAccounts(), Options{Strict: false})
	assert.True(t, res.Valid, "single-sided draft is fine outside strict mode")
}

func TestValidate_AccumulatesAllProblems(t *testing.T) {
	lines := []model.Line{
		{AccountID: 1040, Debit: dec("10.00"), Credit: dec("10.00")},
		debitLine(9999, "5.555"),
	}
	res := Validate(lines, defaultAccounts(), Options{Strict: true})

	assert.False(t, res.Valid)
	assert.True(t, hasProblem(res, ProblemBothSides))
	assert.True(t, hasProblem(res, ProblemUnknownAccount))
	assert.True(t, hasProblem(res, ProblemInactiveAccount))
	assert.True(t, hasProblem(res, ProblemPrecision))
	assert.True(t, hasProblem(res, ProblemImbalance))
}

func TestValidate_Idempotent(t *testing.T) {
	lines := []model.Line{debitLine(1010, "100.00"), creditLine(1040, "99.00")}

	first := Validate(lines, defaultAccounts(), Options{Strict: true})
	second := Validate(lines, defaultAccounts(), Options{Strict: true})

	assert.Equal(t, first, second)
	assert.Equal(t, 1010, lines[0].AccountID, "input not mutated")
	assert.True(t, lines[0].Debit.Equal(dec("100.00")))
}
