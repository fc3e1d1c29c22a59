package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/iho/conta/internal/domain"
	"github.com/iho/conta/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseRetryMax != 3 || cfg.DatabaseRetryInterval != 50*time.Millisecond {
		t.Fatalf("unexpected retry defaults: max=%d interval=%s", cfg.DatabaseRetryMax, cfg.DatabaseRetryInterval)
	}

	if cfg.CatalogCacheTTL != 5*time.Minute {
		t.Fatalf("expected default catalog cache TTL 5m, got %s", cfg.CatalogCacheTTL)
	}

	if !cfg.ReportClampIncome || cfg.ReportLeafOnly || cfg.AutoMigrate {
		t.Fatalf("unexpected report/migration defaults: %+v", cfg)
	}

	opts, err := cfg.ReportOptions()
	if err != nil {
		t.Fatalf("unexpected error building report options: %v", err)
	}
	if opts != domain.DefaultReportOptions() {
		t.Fatalf("expected default report options, got %+v", opts)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("REPORT_TRIAL_BALANCE_MODE", "balances")
	t.Setenv("REPORT_CLAMP_INCOME", "false")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if cfg.RateLimitRPS != 2.5 || !cfg.AutoMigrate {
		t.Fatalf("expected rate limit and auto-migrate overrides, got %+v", cfg)
	}

	opts, err := cfg.ReportOptions()
	if err != nil {
		t.Fatalf("unexpected error building report options: %v", err)
	}
	if opts.TrialBalanceMode != domain.TrialBalanceBalances || opts.ClampIncomePerAccount {
		t.Fatalf("expected report option overrides, got %+v", opts)
	}
}

func TestPrefixTables(t *testing.T) {
	t.Setenv("ACCOUNT_PREFIX_TYPES", "1:activo,2:pasivo,3:patrimonio,4:ingreso,5:gasto,6:costo")
	t.Setenv("ACCOUNT_PREFIX_TERMS", "11:current,15:non_current")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if len(cfg.AccountPrefixTypes) != 6 || cfg.AccountPrefixTypes["4"] != "ingreso" {
		t.Fatalf("unexpected prefix types %v", cfg.AccountPrefixTypes)
	}

	classifier, err := cfg.Classifier()
	if err != nil {
		t.Fatalf("unexpected error building classifier: %v", err)
	}

	if typ, ok := classifier.TypeOf("4135", nil); !ok || typ != domain.AccountTypeIncome {
		t.Fatalf("expected 4135 to classify as income, got %s", typ)
	}
	if !classifier.HasTerms() {
		t.Fatalf("expected term rules to be configured")
	}
}

func TestPrefixTablesInvalidType(t *testing.T) {
	t.Setenv("ACCOUNT_PREFIX_TYPES", "1:gold")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if _, err := cfg.Classifier(); err == nil {
		t.Fatalf("expected error for unknown account type")
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	original := os.Getenv("HTTP_READ_TIMEOUT")
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")
	t.Cleanup(func() {
		t.Setenv("HTTP_READ_TIMEOUT", original)
	})

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
