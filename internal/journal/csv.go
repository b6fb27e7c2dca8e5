package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// Header is the CSV header for journal.csv.
const Header = "entry_id,entry_date,reference,description,account_id,debit_amount,credit_amount,status,version"

const (
	numFields  = 9
	dateFormat = "2006-01-02"
	colEntryID = 0
	colDate    = 1
	colRef     = 2
	colDesc    = 3
	colAcctID  = 4
	colDebit   = 5
	colCredit  = 6
	colStatus  = 7
	colVersion = 8
)

// ReadLines reads all lines from a journal.csv reader.
func ReadLines(r io.Reader) ([]model.Line, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var lines []model.Line
	for i, rec := range records[1:] {
		line, err := UnmarshalLine(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// WriteLines writes lines to a journal.csv writer (including header).
func WriteLines(w io.Writer, lines []model.Line) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, line := range lines {
		if err := cw.Write(MarshalLine(line)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalLine converts a Line to a CSV row.
func MarshalLine(line model.Line) []string {
	row := make([]string, numFields)
	row[colEntryID] = line.EntryID
	row[colDate] = line.Date.Format(dateFormat)
	row[colRef] = line.Reference
	row[colDesc] = line.Description
	row[colAcctID] = strconv.Itoa(line.AccountID)

	// String, not StringFixed: rounding here would corrupt amounts when
	// the ledger is configured for more than the default precision.
	if !line.Debit.IsZero() {
		row[colDebit] = line.Debit.String()
	}
	if !line.Credit.IsZero() {
		row[colCredit] = line.Credit.String()
	}

	row[colStatus] = string(line.Status)
	row[colVersion] = strconv.Itoa(line.Version)
	return row
}

// UnmarshalLine converts a CSV row to a Line.
func UnmarshalLine(record []string) (model.Line, error) {
	if len(record) != numFields {
		return model.Line{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Line{}, fmt.Errorf("parsing entry_date %q: %w", record[colDate], err)
	}

	accountID, err := strconv.Atoi(record[colAcctID])
	if err != nil {
		return model.Line{}, fmt.Errorf("parsing account_id %q: %w", record[colAcctID], err)
	}

	var debit, credit decimal.Decimal

	if record[colDebit] != "" {
		debit, err = decimal.NewFromString(record[colDebit])
		if err != nil {
			return model.Line{}, fmt.Errorf("parsing debit_amount %q: %w", record[colDebit], err)
		}
	}

	if record[colCredit] != "" {
		credit, err = decimal.NewFromString(record[colCredit])
		if err != nil {
			return model.Line{}, fmt.Errorf("parsing credit_amount %q: %w", record[colCredit], err)
		}
	}

	version := 1
	if record[colVersion] != "" {
		version, err = strconv.Atoi(record[colVersion])
		if err != nil {
			return model.Line{}, fmt.Errorf("parsing version %q: %w", record[colVersion], err)
		}
	}

	return model.Line{
		EntryID:     record[colEntryID],
		Date:        date,
		Reference:   record[colRef],
		Description: record[colDesc],
		AccountID:   accountID,
		Debit:       debit,
		Credit:      credit,
		Status:      model.EntryStatus(record[colStatus]),
		Version:     version,
	}, nil
}
