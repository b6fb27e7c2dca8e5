package commands

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tallybook-dev/tallybook/internal/accounts"
	"github.com/tallybook-dev/tallybook/internal/config"
	"github.com/tallybook-dev/tallybook/internal/gitops"
	"github.com/tallybook-dev/tallybook/internal/journal"
	"github.com/tallybook-dev/tallybook/internal/policy"
)

const configFile = "tallybook.yaml"

// ledger bundles everything a subcommand needs to work on a ledger dir.
type ledger struct {
	dir      string
	cfg      *config.Config
	accounts *accounts.Service
	journal  *journal.Service
	policy   policy.Context
}

func (o *rootOptions) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// openLedger loads config and chart of accounts from the ledger dir and
// wires the journal service and policy context for this invocation.
func openLedger(o *rootOptions) (*ledger, error) {
	dir, err := filepath.Abs(o.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving ledger dir: %w", err)
	}

	cfg, err := config.Load(filepath.Join(dir, configFile))
	if err != nil {
		return nil, fmt.Errorf("not a tallybook ledger (run init first): %w", err)
	}

	accts, err := accounts.Load(dir)
	if err != nil {
		return nil, err
	}

	svc := journal.NewService(dir, accts, cfg.OffsetPolicy(), o.logger())
	svc.SetPrecision(cfg.Precision)

	ctx := cfg.PolicyContext()
	if o.role != "" {
		ctx.ActingRole = policy.Role(o.role)
	}
	ctx.AdjustmentMode = o.adjust
	svc.SetActor(string(ctx.ActingRole))

	return &ledger{
		dir:      dir,
		cfg:      cfg,
		accounts: accts,
		journal:  svc,
		policy:   ctx,
	}, nil
}

// maybeCommit records a ledger mutation in git when auto-commit is on.
func (l *ledger) maybeCommit(message string) error {
	if !l.cfg.Git.AutoCommit || !gitops.IsRepo(l.dir) {
		return nil
	}
	_, err := gitops.CommitAll(l.dir, message, gitops.Author{
		Name:  l.cfg.Git.AuthorName,
		Email: l.cfg.Git.AuthorEmail,
	})
	if err != nil {
		return fmt.Errorf("auto-commit: %w", err)
	}
	return nil
}
