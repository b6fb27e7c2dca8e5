package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tallybook-dev/tallybook/internal/classifier"
	"github.com/tallybook-dev/tallybook/internal/model"
)

func TestResolve_DefaultPolicyPassesThrough(t *testing.T) {
	ctx := DefaultContext()

	for _, class := range []classifier.Classification{
		classifier.ClassAsset, classifier.ClassLiability, classifier.ClassEquity,
	} {
		d := Resolve(classifier.Describe(class), ctx)
		assert.True(t, d.DebitEnabled, "%s", class)
		assert.True(t, d.CreditEnabled, "%s", class)
	}

	rev := Resolve(classifier.Describe(classifier.ClassRevenue), ctx)
	assert.False(t, rev.DebitEnabled)
	assert.True(t, rev.CreditEnabled)

	exp := Resolve(classifier.Describe(classifier.ClassExpense), ctx)
	assert.True(t, exp.DebitEnabled)
	assert.False(t, exp.CreditEnabled)
}

func TestResolve_RestrictionNoneOpensEverything(t *testing.T) {
	// "none" wins regardless of role or adjustment mode.
	ctx := Context{Restriction: RestrictionNone, ActingRole: RoleUser}

	for _, class := range []classifier.Classification{
		classifier.ClassAsset, classifier.ClassLiability, classifier.ClassEquity,
		classifier.ClassRevenue, classifier.ClassExpense, classifier.ClassUnknown,
	} {
		d := Resolve(classifier.Describe(class), ctx)
		assert.True(t, d.DebitEnabled, "%s debit", class)
		assert.True(t, d.CreditEnabled, "%s credit", class)
	}
}

func TestResolve_AdjustmentMode(t *testing.T) {
	ctx := DefaultContext()
	ctx.AdjustmentMode = true

	d := Resolve(classifier.Describe(classifier.ClassRevenue), ctx)
	assert.True(t, d.DebitEnabled)
	assert.True(t, d.CreditEnabled)
	assert.Contains(t, d.DebitLabel, "(override)")
	assert.NotContains(t, d.CreditLabel, "(override)", "already-enabled side keeps its label")
	assert.Equal(t, model.SideCredit, d.NormalSide, "normal side preserved")
}

func TestResolve_RoleOverride(t *testing.T) {
	base := classifier.Describe(classifier.ClassExpense)

	ctx := DefaultContext()
	ctx.ActingRole = RoleAccountant
	ctx.AllowRoleOverride = true
	d := Resolve(base, ctx)
	assert.True(t, d.CreditEnabled)
	assert.Contains(t, d.CreditLabel, "(override)")

	// Same role without the gate stays restricted.
	ctx.AllowRoleOverride = false
	d = Resolve(base, ctx)
	assert.False(t, d.CreditEnabled)

	// Unprivileged role with the gate stays restricted too.
	ctx.ActingRole = RoleUser
	ctx.AllowRoleOverride = true
	d = Resolve(base, ctx)
	assert.False(t, d.CreditEnabled)
}

func TestResolve_StrictWithoutOverride(t *testing.T) {
	ctx := Context{Restriction: RestrictionStrict, ActingRole: RoleUser}
	d := Resolve(classifier.Describe(classifier.ClassRevenue), ctx)
	assert.False(t, d.DebitEnabled, "strict keeps the base descriptor")
}

func TestResolve_Stateless(t *testing.T) {
	base := classifier.Describe(classifier.ClassRevenue)

	open := DefaultContext()
	open.AdjustmentMode = true
	d1 := Resolve(base, open)
	assert.True(t, d1.DebitEnabled)

	// Next call with a different context must not remember the previous one.
	d2 := Resolve(base, DefaultContext())
	assert.False(t, d2.DebitEnabled)
}

func TestRolePrivileged(t *testing.T) {
	assert.False(t, RoleUser.Privileged())
	assert.True(t, RoleAccountant.Privileged())
	assert.True(t, RoleManager.Privileged())
	assert.True(t, RoleAdmin.Privileged())
}
