package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Policy.BorrowLimit)
	assert.Equal(t, 14, cfg.Policy.BorrowDays)
	assert.Equal(t, 5, cfg.Policy.FinePerDay)
	assert.Equal(t, 50, cfg.Policy.FineCap)
	assert.Equal(t, 7, cfg.Policy.ReservationDays)
	assert.Equal(t, 500, cfg.Jobs.OverdueScanBatchSize)
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("POLICY_BORROW_LIMIT", "5")
	t.Setenv("POLICY_FINE_CAP", "100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Policy.BorrowLimit)
	assert.Equal(t, 100, cfg.Policy.FineCap)
}

func TestValidateRejectsBrokenPolicy(t *testing.T) {
	t.Setenv("POLICY_BORROW_LIMIT", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRequiresProductionSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	assert.Error(t, err, "default JWT secret must not survive in production")
}
