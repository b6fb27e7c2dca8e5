package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tallybook-dev/tallybook/internal/journal"
	"github.com/tallybook-dev/tallybook/internal/policy"
)

// Config represents the top-level tallybook.yaml configuration.
type Config struct {
	Business     BusinessConfig `yaml:"business"`
	Policy       PolicyConfig   `yaml:"policy"`
	Precision    int32          `yaml:"precision"`
	Offsets      OffsetsConfig  `yaml:"offsets"`
	BankAccounts []BankAccount  `yaml:"bank_accounts,omitempty"`
	Git          GitConfig      `yaml:"git"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// PolicyConfig holds the company-wide entry policy. Session-local fields
// (adjustment mode, acting role) come from flags, not from here.
type PolicyConfig struct {
	RestrictionLevel  string `yaml:"restriction_level"`
	AllowRoleOverride bool   `yaml:"allow_role_override"`
	DefaultRole       string `yaml:"default_role"`
}

// OffsetsConfig selects counter-accounts for auto-balanced entries.
type OffsetsConfig struct {
	DefaultAccount int            `yaml:"default_account"`
	ByIntent       map[string]int `yaml:"by_intent,omitempty"`
}

// BankAccount maps a bank feed to a chart-of-accounts entry.
type BankAccount struct {
	Name      string `yaml:"name"`
	LastFour  string `yaml:"last_four"`
	AccountID int    `yaml:"account_id"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a tallybook.yaml file from disk and applies environment
// overrides. A .env file next to the caller's working directory is
// honored if present.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	_ = godotenv.Load() // no .env is fine
	applyEnv(&cfg)
	return &cfg, nil
}

// applyEnv lets TALLYBOOK_* variables override company policy settings,
// which keeps CI and shared-machine setups out of the yaml file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("TALLYBOOK_RESTRICTION_LEVEL"); v != "" {
		cfg.Policy.RestrictionLevel = v
	}
	if v := os.Getenv("TALLYBOOK_DEFAULT_ROLE"); v != "" {
		cfg.Policy.DefaultRole = v
	}
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name: businessName,
		},
		Policy: PolicyConfig{
			RestrictionLevel:  string(policy.RestrictionFlexible),
			AllowRoleOverride: true,
			DefaultRole:       string(policy.RoleUser),
		},
		Precision: 2,
		Offsets: OffsetsConfig{
			DefaultAccount: 1090,
			ByIntent: map[string]int{
				string(journal.IntentAssetReleased): 5990,
				string(journal.IntentAssetAcquired): 4090,
			},
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Tallybook",
			AuthorEmail: "ledger@tallybook.dev",
		},
	}
}

// PolicyContext builds the baseline policy context from company settings.
// The session-local fields stay false/default; flags flip them per call.
func (c *Config) PolicyContext() policy.Context {
	ctx := policy.Context{
		Restriction:       policy.RestrictionLevel(c.Policy.RestrictionLevel),
		ActingRole:        policy.Role(c.Policy.DefaultRole),
		AllowRoleOverride: c.Policy.AllowRoleOverride,
	}
	if ctx.Restriction == "" {
		ctx.Restriction = policy.RestrictionFlexible
	}
	if ctx.ActingRole == "" {
		ctx.ActingRole = policy.RoleUser
	}
	return ctx
}

// OffsetPolicy converts the configured offsets into the journal's form.
func (c *Config) OffsetPolicy() journal.OffsetPolicy {
	byIntent := make(map[journal.Intent]int, len(c.Offsets.ByIntent))
	for intent, account := range c.Offsets.ByIntent {
		byIntent[journal.Intent(intent)] = account
	}
	return journal.OffsetPolicy{
		DefaultAccount: c.Offsets.DefaultAccount,
		ByIntent:       byIntent,
	}
}
