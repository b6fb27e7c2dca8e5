// Package policy layers company settings, session adjustment mode and the
// acting user's role over the classifier's default behavior. Resolution is
// a pure function of an explicit Context value; there is no ambient state,
// so a context change takes effect on the very next call.
package policy

import (
	"github.com/tallybook-dev/tallybook/internal/classifier"
)

// RestrictionLevel is the company-wide entry restriction setting.
type RestrictionLevel string

const (
	RestrictionNone     RestrictionLevel = "none"
	RestrictionFlexible RestrictionLevel = "flexible"
	RestrictionStrict   RestrictionLevel = "strict"
)

// Role is the acting user's role.
type Role string

const (
	RoleUser       Role = "user"
	RoleAccountant Role = "accountant"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
)

// Privileged reports whether the role may relax classifier defaults when
// role overrides are allowed.
func (r Role) Privileged() bool {
	switch r {
	case RoleAccountant, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Context carries everything resolution depends on, passed per call.
type Context struct {
	Restriction       RestrictionLevel
	AdjustmentMode    bool
	ActingRole        Role
	AllowRoleOverride bool
}

// DefaultContext is the baseline policy: flexible restriction, ordinary
// user, no overrides.
func DefaultContext() Context {
	return Context{
		Restriction: RestrictionFlexible,
		ActingRole:  RoleUser,
	}
}

// overrides reports whether the session or role relaxes classifier defaults.
func (c Context) overrides() bool {
	return c.AdjustmentMode || (c.ActingRole.Privileged() && c.AllowRoleOverride)
}

// Resolve applies the policy context to a base descriptor.
//
// Restriction "none" wins over everything: both sides open for every
// classification. Otherwise adjustment mode or a privileged role (when
// role overrides are allowed) opens any disabled side, annotating its
// label so the UI can show that an override is in effect. In all other
// cases the base descriptor passes through unchanged; strict and flexible
// differ only in what the surrounding application layers on top.
func Resolve(d classifier.Descriptor, ctx Context) classifier.Descriptor {
	if ctx.Restriction == RestrictionNone {
		d.DebitEnabled = true
		d.CreditEnabled = true
		d.Help = "Company policy places no restriction on entry direction."
		return d
	}

	if !ctx.overrides() {
		return d
	}

	if !d.DebitEnabled {
		d.DebitEnabled = true
		d.DebitLabel += " (override)"
	}
	if !d.CreditEnabled {
		d.CreditEnabled = true
		d.CreditLabel += " (override)"
	}
	return d
}
