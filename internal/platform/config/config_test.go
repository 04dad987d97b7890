package config_test

import (
	"testing"
	"time"

	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/SscSPs/kasbook/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []domain.EntityCode{"KSS", "KSP", "KSU", "KSB", "KSM"}, cfg.Entities)
	assert.Equal(t, "Asia/Jakarta", cfg.Location.String())
	assert.Equal(t, "1000000", cfg.ApprovalThreshold.String())
	assert.Equal(t, 12*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("ENTITIES", "ksa, ksb")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("PETTY_CASH_APPROVAL_THRESHOLD", "250000.50")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("PDF_TIMEOUT", "not-a-duration")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []domain.EntityCode{"KSA", "KSB"}, cfg.Entities)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, "250000.5", cfg.ApprovalThreshold.String())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.PDFTimeout)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "duplicate entity", key: "ENTITIES", value: "KSS,kss"},
		{name: "unknown timezone", key: "APP_TIMEZONE", value: "Mars/Olympus"},
		{name: "threshold not a number", key: "PETTY_CASH_APPROVAL_THRESHOLD", value: "lots"},
		{name: "negative threshold", key: "PETTY_CASH_APPROVAL_THRESHOLD", value: "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := config.LoadConfig()
			assert.Error(t, err)
		})
	}
}
