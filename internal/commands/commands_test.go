package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook-dev/tallybook/internal/accounts"
	"github.com/tallybook-dev/tallybook/internal/journal"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "tallybook-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "tallybook")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/tallybook")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runTallybook(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func initLedger(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out, err := runTallybook(t, "init", dir, "--name", "Test Biz")
	require.NoError(t, err, out)
	return dir
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := initLedger(t)

	for _, d := range []string{"accounts", "logs", "import", filepath.Join("import", "processed")} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tallybook.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Test Biz")
	assert.Contains(t, string(data), "restriction_level: flexible")

	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git should exist")
}

func TestInit_Accounts(t *testing.T) {
	dir := initLedger(t)

	f, err := os.Open(filepath.Join(dir, "accounts", "chart-of-accounts.csv"))
	require.NoError(t, err)
	defer f.Close()

	accts, err := accounts.ReadAccounts(f)
	require.NoError(t, err)
	assert.Len(t, accts, 13, "default chart has 13 accounts")
}

func TestInit_RequiresName(t *testing.T) {
	_, err := runTallybook(t, "init", t.TempDir())
	require.Error(t, err, "init without --name should fail")
}

func TestAdd_TwoSided(t *testing.T) {
	dir := initLedger(t)

	out, err := runTallybook(t, "add", "-C", dir,
		"--date", "2025-01-15", "--desc", "Software",
		"--debit-account", "5020", "--credit-account", "1010",
		"--amount", "4.00")
	require.NoError(t, err, out)
	assert.Contains(t, out, "JE-2025-01-001")

	f, err := os.Open(filepath.Join(dir, "2025", "01", "journal.csv"))
	require.NoError(t, err)
	defer f.Close()

	lines, err := journal.ReadLines(f)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, journal.Aggregate(lines).Balanced())
}

func TestAdd_SingleSidedAutoBalances(t *testing.T) {
	dir := initLedger(t)

	out, err := runTallybook(t, "add", "-C", dir,
		"--date", "2025-01-15", "--desc", "SaaS renewal",
		"--account", "5020", "--side", "debit", "--amount", "12.50")
	require.NoError(t, err, out)

	out, err = runTallybook(t, "trial-balance", "-C", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Total debits:  12.50")
	assert.Contains(t, out, "Total credits: 12.50")
	assert.Contains(t, out, "Balance:       0.00")
}

func TestAdd_PolicyGatesRevenueDebit(t *testing.T) {
	dir := initLedger(t)

	// Debit to a revenue account is a reversal; plain users can't.
	out, err := runTallybook(t, "add", "-C", dir,
		"--date", "2025-01-15", "--account", "4010",
		"--side", "debit", "--amount", "10.00")
	require.Error(t, err)
	assert.Contains(t, out, "disabled")

	// Adjustment mode opens it.
	out, err = runTallybook(t, "add", "-C", dir, "--adjust",
		"--date", "2025-01-15", "--account", "4010",
		"--side", "debit", "--amount", "10.00")
	require.NoError(t, err, out)

	// So does a privileged role, since the default config allows overrides.
	out, err = runTallybook(t, "add", "-C", dir, "--role", "accountant",
		"--date", "2025-01-16", "--account", "4010",
		"--side", "debit", "--amount", "5.00")
	require.NoError(t, err, out)
}

func TestVoid_RemovesFromTrialBalance(t *testing.T) {
	dir := initLedger(t)

	out, err := runTallybook(t, "add", "-C", dir,
		"--date", "2025-01-15", "--desc", "Mistake",
		"--debit-account", "5020", "--credit-account", "1010",
		"--amount", "100.00")
	require.NoError(t, err, out)

	out, err = runTallybook(t, "void", "-C", dir, "JE-2025-01-001")
	require.NoError(t, err, out)

	out, err = runTallybook(t, "trial-balance", "-C", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Total debits:  0.00")
}

func TestCheck_CleanMonth(t *testing.T) {
	dir := initLedger(t)

	out, err := runTallybook(t, "add", "-C", dir,
		"--date", "2025-01-15", "--desc", "Fine",
		"--debit-account", "5020", "--credit-account", "1010",
		"--amount", "75.25")
	require.NoError(t, err, out)

	out, err = runTallybook(t, "check", "-C", dir, "--year", "2025", "--month", "1")
	require.NoError(t, err, out)
	assert.Contains(t, out, "OK")
}

func TestCheck_ReportsProblemsInReferenceOrder(t *testing.T) {
	dir := initLedger(t)

	// Two lone debits written directly to disk, in reverse order.
	monthDir := filepath.Join(dir, "2025", "01")
	require.NoError(t, os.MkdirAll(monthDir, 0o755))
	journalCSV := journal.Header + "\n" +
		"e2,2025-01-20,B-ENTRY,Second,5020,20.00,,draft,1\n" +
		"e1,2025-01-10,A-ENTRY,First,5020,10.00,,draft,1\n"
	require.NoError(t, os.WriteFile(filepath.Join(monthDir, "journal.csv"), []byte(journalCSV), 0o644))

	out, err := runTallybook(t, "check", "-C", dir, "--year", "2025", "--month", "1")
	require.Error(t, err)
	first := strings.Index(out, "A-ENTRY:")
	second := strings.Index(out, "B-ENTRY:")
	require.NotEqual(t, -1, first, out)
	require.NotEqual(t, -1, second, out)
	assert.Less(t, first, second, "problems sorted by reference")
}

func TestCommands_RequireLedger(t *testing.T) {
	out, err := runTallybook(t, "trial-balance", "-C", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, out, "not a tallybook ledger")
}
