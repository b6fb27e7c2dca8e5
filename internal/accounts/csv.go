package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tallybook-dev/tallybook/internal/model"
)

const (
	numFields = 6
	colID     = 0
	colCode   = 1
	colName   = 2
	colType   = 3
	colActive = 4
	colDesc   = 5
)

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"account_id", "code", "account_name", "account_type", "active", "description"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(acct.ID)
	row[colCode] = acct.Code
	row[colName] = acct.Name
	row[colType] = acct.Type
	row[colActive] = strconv.FormatBool(acct.Active)
	row[colDesc] = acct.Description
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	id, err := strconv.Atoi(record[colID])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing account_id %q: %w", record[colID], err)
	}

	active, err := strconv.ParseBool(record[colActive])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing active %q: %w", record[colActive], err)
	}

	return model.Account{
		ID:          id,
		Code:        record[colCode],
		Name:        record[colName],
		Type:        record[colType],
		Active:      active,
		Description: record[colDesc],
	}, nil
}
