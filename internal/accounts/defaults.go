package accounts

import "github.com/tallybook-dev/tallybook/internal/model"

// DefaultChart returns the starter chart of accounts for a new ledger.
// 1090 is the cash clearing account the auto-balancer offsets against by
// default; 4090/5990 catch uncategorized bank imports.
func DefaultChart() []model.Account {
	return []model.Account{
		{ID: 1010, Code: "1010", Name: "Business Checking", Type: "asset", Active: true, Description: "Primary checking account"},
		{ID: 1020, Code: "1020", Name: "Business Savings", Type: "asset", Active: true, Description: "Savings account"},
		{ID: 1090, Code: "1090", Name: "Cash Clearing", Type: "asset", Active: true, Description: "Default offset for auto-balanced entries"},
		{ID: 2010, Code: "2010", Name: "Credit Card", Type: "liability", Active: true, Description: "Business credit card"},
		{ID: 3010, Code: "3010", Name: "Owner's Equity", Type: "equity", Active: true, Description: "Owner's equity"},
		{ID: 4010, Code: "4010", Name: "Service Revenue", Type: "income", Active: true},
		{ID: 4020, Code: "4020", Name: "Product Revenue", Type: "sales revenue", Active: true},
		{ID: 4090, Code: "4090", Name: "Uncategorized Income", Type: "other income", Active: true, Description: "Holding account for unreviewed deposits"},
		{ID: 5010, Code: "5010", Name: "Advertising & Marketing", Type: "expense", Active: true, Description: "Advertising costs"},
		{ID: 5020, Code: "5020", Name: "Software & SaaS", Type: "expense", Active: true, Description: "Software subscriptions"},
		{ID: 5030, Code: "5030", Name: "Office Supplies", Type: "expense", Active: true, Description: "Office supplies and expenses"},
		{ID: 5040, Code: "5040", Name: "Professional Services", Type: "expense", Active: true, Description: "Legal, accounting, consulting"},
		{ID: 5990, Code: "5990", Name: "Uncategorized Expense", Type: "expense", Active: true, Description: "Holding account for unreviewed spending"},
	}
}
