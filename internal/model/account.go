package model

import "fmt"

// Account represents a row in chart-of-accounts.csv.
type Account struct {
	ID          int
	Code        string // optional short code, shown in user-facing messages
	Name        string
	Type        string // free-text classification; normalized by the classifier
	Active      bool
	Description string
}

// Label returns "code name" (or just the name) for user-facing messages.
func (a Account) Label() string {
	if a.Code == "" {
		return a.Name
	}
	return fmt.Sprintf("%s %s", a.Code, a.Name)
}
