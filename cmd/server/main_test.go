package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/conta/internal/domain"
	"github.com/iho/conta/internal/infrastructure/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestNewRateLimiter(t *testing.T) {
	cfg := testConfig(t)

	cfg.RateLimitRPS = 0
	assert.Nil(t, newRateLimiter(cfg))

	cfg.RateLimitRPS = 5
	cfg.RateLimitBurst = 0
	assert.NotNil(t, newRateLimiter(cfg))
}

func TestNewHTTPServer(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTPPort = "9191"
	cfg.HTTPIdleTimeout = 42 * time.Second

	srv := newHTTPServer(cfg, http.NotFoundHandler())

	assert.Equal(t, ":9191", srv.Addr)
	assert.Equal(t, 42*time.Second, srv.IdleTimeout)
	assert.Equal(t, cfg.HTTPReadTimeout, srv.ReadTimeout)
}

func TestReportSettings(t *testing.T) {
	cfg := testConfig(t)
	cfg.ReportTrialBalanceMode = "balances"
	cfg.AccountPrefixTypes = map[string]string{"7": "expense"}

	classifier, opts, err := reportSettings(cfg)
	require.NoError(t, err)

	assert.Equal(t, domain.TrialBalanceBalances, opts.TrialBalanceMode)
	typ, ok := classifier.TypeOf("7105", nil)
	assert.True(t, ok)
	assert.Equal(t, domain.AccountTypeExpense, typ)

	cfg.ReportTrialBalanceMode = "sideways"
	_, _, err = reportSettings(cfg)
	assert.Error(t, err)
}

func TestServeStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTPPort = "0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, newHTTPServer(cfg, http.NotFoundHandler()), time.Second, zerolog.Nop())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
