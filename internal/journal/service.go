package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tallybook-dev/tallybook/internal/auditlog"
	"github.com/tallybook-dev/tallybook/internal/id"
	"github.com/tallybook-dev/tallybook/internal/model"
)

// ErrEntryNotFound is returned when no entry carries the given reference.
var ErrEntryNotFound = errors.New("entry not found")

// ErrVersionConflict is returned when an entry was modified since the
// caller last read it. Two users editing the same draft is a real hazard
// on a shared ledger; the loser gets this instead of a silent overwrite.
var ErrVersionConflict = errors.New("entry was modified concurrently, reload and retry")

// Service provides business logic for journal entries over a ledger
// directory of per-month journal.csv files.
type Service struct {
	root      string
	accounts  AccountResolver
	offsets   OffsetPolicy
	log       *zap.Logger
	actor     string
	precision int32
}

// NewService creates a journal Service. A nil logger disables logging.
func NewService(root string, accounts AccountResolver, offsets OffsetPolicy, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		root:     root,
		accounts: accounts,
		offsets:  offsets,
		log:      log,
		actor:    "user",
	}
}

// SetActor names the acting user in the audit log.
func (s *Service) SetActor(actor string) {
	if actor != "" {
		s.actor = actor
	}
}

// SetPrecision sets the amount precision used when validating new
// entries. Zero keeps model.DefaultPrecision.
func (s *Service) SetPrecision(precision int32) {
	s.precision = precision
}

// AppendParams holds parameters for creating a journal entry.
type AppendParams struct {
	Date        time.Time
	Reference   string // blank = auto-generated "JE-YYYY-MM-NNN"
	Description string
	Status      model.EntryStatus // blank = draft
	Lines       []model.Line      // accounts and one-sided amounts set by the caller
}

// Append validates a new entry and writes it to the month's journal.csv.
// The whole month file is rewritten through a temp file and rename, so a
// multi-line entry is persisted all-or-none. Returns the entry reference.
func (s *Service) Append(params AppendParams) (string, error) {
	if len(params.Lines) == 0 {
		return "", errors.New("entry has no lines")
	}

	year := params.Date.Year()
	month := int(params.Date.Month())

	existing, err := s.ReadMonth(year, month)
	if err != nil {
		return "", err
	}

	ref := params.Reference
	if ref == "" {
		ref = id.FormatReference(year, month, id.NextSeq(references(existing), year, month))
	} else if err := s.checkReferenceFree(ref); err != nil {
		return "", err
	}

	status := params.Status
	if status == "" {
		status = model.StatusDraft
	}

	entryID := uuid.NewString()
	stamped := make([]model.Line, len(params.Lines))
	for i, line := range params.Lines {
		line.EntryID = entryID
		line.Date = params.Date
		line.Reference = ref
		line.Status = status
		line.Version = 1
		if line.Description == "" {
			line.Description = params.Description
		}
		stamped[i] = line
	}

	res := Validate(stamped, s.accounts, Options{Strict: true, Precision: s.precision})
	if !res.Valid {
		return "", fmt.Errorf("validation failed: %s", strings.Join(res.Messages(), "; "))
	}

	if err := s.writeMonth(year, month, append(existing, stamped...)); err != nil {
		return "", err
	}

	s.audit("append", fmt.Sprintf("%d lines, %s total", len(stamped), res.TotalDebits.StringFixed(model.DefaultPrecision)), ref)
	s.log.Info("entry appended",
		zap.String("reference", ref),
		zap.Int("lines", len(stamped)),
		zap.String("status", string(status)))
	return ref, nil
}

// AddSingle auto-balances one user-declared leg against the configured
// offset account and appends the resulting entry.
func (s *Service) AddSingle(leg SingleLeg, reference string, status model.EntryStatus) (string, error) {
	lines, err := AutoBalance(leg, s.accounts, s.offsets)
	if err != nil {
		return "", err
	}
	return s.Append(AppendParams{
		Date:        leg.Date,
		Reference:   reference,
		Description: leg.Description,
		Status:      status,
		Lines:       lines,
	})
}

// AddDoubleParams holds parameters for an explicit two-account entry.
type AddDoubleParams struct {
	Date          time.Time
	Description   string
	DebitAccount  int
	CreditAccount int
	Amount        decimal.Decimal
	Reference     string
	Status        model.EntryStatus
}

// AddDouble creates a balanced debit/credit pair and appends it.
func (s *Service) AddDouble(params AddDoubleParams) (string, error) {
	debit := model.Line{AccountID: params.DebitAccount}
	debit.SetDebit(params.Amount)
	credit := model.Line{AccountID: params.CreditAccount}
	credit.SetCredit(params.Amount)

	return s.Append(AppendParams{
		Date:        params.Date,
		Reference:   params.Reference,
		Description: params.Description,
		Status:      params.Status,
		Lines:       []model.Line{debit, credit},
	})
}

// Post transitions a draft entry to posted. Posted entries are immutable
// balance-wise; only void remains as a further transition.
func (s *Service) Post(reference string, expectedVersion int) error {
	err := s.updateEntry(reference, expectedVersion, func(lines []model.Line) ([]model.Line, error) {
		if lines[0].Status != model.StatusDraft {
			return nil, fmt.Errorf("entry %s is %s, only drafts can be posted", reference, lines[0].Status)
		}
		return withStatus(lines, model.StatusPosted), nil
	})
	if err != nil {
		return err
	}
	s.audit("post", "", reference)
	s.log.Info("entry posted", zap.String("reference", reference))
	return nil
}

// Void marks all lines of an entry void. Amounts drop out of the trial
// balance but the entry stays on file for audit.
func (s *Service) Void(reference string, expectedVersion int) error {
	err := s.updateEntry(reference, expectedVersion, func(lines []model.Line) ([]model.Line, error) {
		if lines[0].Status == model.StatusVoid {
			return nil, fmt.Errorf("entry %s is already void", reference)
		}
		return withStatus(lines, model.StatusVoid), nil
	})
	if err != nil {
		return err
	}
	s.audit("void", "", reference)
	s.log.Info("entry voided", zap.String("reference", reference))
	return nil
}

// Delete removes every line of a draft entry atomically. There is no
// partial deletion of a multi-line entry; posted entries must be voided
// instead.
func (s *Service) Delete(reference string, expectedVersion int) error {
	err := s.updateEntry(reference, expectedVersion, func(lines []model.Line) ([]model.Line, error) {
		if lines[0].Status != model.StatusDraft {
			return nil, fmt.Errorf("entry %s is %s, only drafts can be deleted (void it instead)", reference, lines[0].Status)
		}
		return nil, nil
	})
	if err != nil {
		return err
	}
	s.audit("delete", "", reference)
	s.log.Info("entry deleted", zap.String("reference", reference))
	return nil
}

// ReadMonth reads all lines for a given year/month.
func (s *Service) ReadMonth(year, month int) ([]model.Line, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return lines, nil
}

// ReadAll reads every line in the ledger, across all months.
func (s *Service) ReadAll() ([]model.Line, error) {
	var all []model.Line
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != "journal.csv" {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening journal %s: %w", path, err)
		}
		defer f.Close()

		lines, err := ReadLines(f)
		if err != nil {
			return fmt.Errorf("reading journal %s: %w", path, err)
		}
		all = append(all, lines...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// TrialBalanceMonth aggregates one month's non-void lines.
func (s *Service) TrialBalanceMonth(year, month int) (TrialBalance, error) {
	lines, err := s.ReadMonth(year, month)
	if err != nil {
		return TrialBalance{}, err
	}
	return Aggregate(lines), nil
}

// TrialBalanceAll aggregates the whole ledger.
func (s *Service) TrialBalanceAll() (TrialBalance, error) {
	lines, err := s.ReadAll()
	if err != nil {
		return TrialBalance{}, err
	}
	return Aggregate(lines), nil
}

// updateEntry locates an entry by reference, checks its version, applies
// the mutation to its lines (nil result deletes them) and rewrites the
// month file atomically.
func (s *Service) updateEntry(reference string, expectedVersion int, apply func([]model.Line) ([]model.Line, error)) error {
	year, month, monthLines, err := s.locate(reference)
	if err != nil {
		return err
	}

	var entry, rest []model.Line
	for _, line := range monthLines {
		if line.Reference == reference {
			entry = append(entry, line)
		} else {
			rest = append(rest, line)
		}
	}
	if len(entry) == 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, reference)
	}

	if expectedVersion != 0 && entry[0].Version != expectedVersion {
		return fmt.Errorf("%w: %s is at version %d, expected %d",
			ErrVersionConflict, reference, entry[0].Version, expectedVersion)
	}

	updated, err := apply(entry)
	if err != nil {
		return err
	}
	for i := range updated {
		updated[i].Version = entry[0].Version + 1
	}

	return s.writeMonth(year, month, append(rest, updated...))
}

// locate finds the month holding an entry. Generated references encode
// it; caller-supplied ones need a ledger scan.
func (s *Service) locate(reference string) (int, int, []model.Line, error) {
	if year, month, _, err := id.ParseReference(reference); err == nil {
		lines, err := s.ReadMonth(year, month)
		if err != nil {
			return 0, 0, nil, err
		}
		return year, month, lines, nil
	}

	all, err := s.ReadAll()
	if err != nil {
		return 0, 0, nil, err
	}
	for _, line := range all {
		if line.Reference == reference {
			year := line.Date.Year()
			month := int(line.Date.Month())
			monthLines, err := s.ReadMonth(year, month)
			if err != nil {
				return 0, 0, nil, err
			}
			return year, month, monthLines, nil
		}
	}
	return 0, 0, nil, fmt.Errorf("%w: %s", ErrEntryNotFound, reference)
}

func (s *Service) checkReferenceFree(ref string) error {
	all, err := s.ReadAll()
	if err != nil {
		return err
	}
	for _, line := range all {
		if line.Reference == ref {
			return fmt.Errorf("reference %s already exists in the ledger", ref)
		}
	}
	return nil
}

// writeMonth rewrites a month's journal.csv through a temp file and
// rename so readers never observe a torn multi-line write.
func (s *Service) writeMonth(year, month int, lines []model.Line) error {
	path := s.monthPath(year, month)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "journal-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp journal: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteLines(tmp, lines); err != nil {
		tmp.Close()
		return fmt.Errorf("writing journal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp journal: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing journal: %w", err)
	}
	return nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.root, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "journal.csv")
}

func (s *Service) audit(action, details, reference string) {
	err := auditlog.Append(s.root, auditlog.Entry{
		Timestamp: time.Now(),
		Actor:     s.actor,
		Action:    action,
		Details:   details,
		EntryRef:  reference,
	})
	if err != nil {
		s.log.Warn("audit log append failed", zap.Error(err))
	}
}

func references(lines []model.Line) []string {
	refs := make([]string, len(lines))
	for i, line := range lines {
		refs[i] = line.Reference
	}
	return refs
}

func withStatus(lines []model.Line, status model.EntryStatus) []model.Line {
	out := make([]model.Line, len(lines))
	for i, line := range lines {
		line.Status = status
		out[i] = line
	}
	return out
}
