package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tournament-entry/internal/pricing"
)

var allKeys = []string{
	"CONFIG_FILE", "HTTP_ADDR", "SITE_URL", "STATIC_DIR", "PAYMENT_PROVIDER",
	"STRIPE_SECRET_KEY", "STRIPE_WEBHOOK_SECRET", "PRICING_MODE",
	"RECORDER_BACKEND", "RECORDER_URL", "RECORDER_API_KEY",
	"GOOGLE_SHEETS_SPREADSHEET_ID", "GOOGLE_SERVICE_ACCOUNT_JSON", "GOOGLE_SHEETS_SHEET",
	"TELEGRAM_BOT_TOKEN", "ADMIN_TG_IDS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_x")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_x")
	t.Setenv("RECORDER_URL", "https://script.example/exec")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, DefaultSiteURL, c.SiteURL)
	assert.Equal(t, "stripe", c.PaymentProvider)
	assert.Equal(t, pricing.ModeTest, c.PricingMode)
	assert.Equal(t, "appsscript", c.RecorderBackend)
	assert.True(t, c.UsingPlaceholderAPIKey())
	assert.Equal(t, "Entries", c.SheetName)
	assert.Empty(t, c.AdminTGIDs)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STRIPE_SECRET_KEY", "sk_live_x")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_x")
	t.Setenv("RECORDER_URL", "https://script.example/exec")
	t.Setenv("RECORDER_API_KEY", "real-key")
	t.Setenv("SITE_URL", "https://entries.example.org/")
	t.Setenv("PRICING_MODE", "live")
	t.Setenv("ADMIN_TG_IDS", "11, 22,bad,,33")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://entries.example.org", c.SiteURL)
	assert.Equal(t, pricing.ModeLive, c.PricingMode)
	assert.False(t, c.UsingPlaceholderAPIKey())
	assert.Equal(t, []int64{11, 22, 33}, c.AdminTGIDs)
}

func TestFromEnvConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "entry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_addr: ":9000"
payment_provider: stub
pricing_mode: live
recorder_backend: sheets
spreadsheet_id: sheet-123
service_account_json: /etc/sa.json
sheet: Tournament
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_ADDR", ":9100")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9100", c.HTTPAddr)
	assert.Equal(t, "stub", c.PaymentProvider)
	assert.Equal(t, "change-me", c.StripeWebhookSecret)
	assert.Equal(t, pricing.ModeLive, c.PricingMode)
	assert.Equal(t, "sheets", c.RecorderBackend)
	assert.Equal(t, "sheet-123", c.SpreadsheetID)
	assert.Equal(t, "Tournament", c.SheetName)
}

func TestFromEnvValidation(t *testing.T) {
	cases := map[string]map[string]string{
		"missing stripe key": {
			"STRIPE_WEBHOOK_SECRET": "whsec", "RECORDER_URL": "http://x",
		},
		"missing webhook secret": {
			"STRIPE_SECRET_KEY": "sk", "RECORDER_URL": "http://x",
		},
		"missing recorder url": {
			"STRIPE_SECRET_KEY": "sk", "STRIPE_WEBHOOK_SECRET": "whsec",
		},
		"unknown provider": {
			"PAYMENT_PROVIDER": "paypal", "RECORDER_URL": "http://x",
		},
		"unknown backend": {
			"PAYMENT_PROVIDER": "stub", "RECORDER_BACKEND": "csv",
		},
		"sheets without spreadsheet": {
			"PAYMENT_PROVIDER": "stub", "RECORDER_BACKEND": "sheets",
			"GOOGLE_SERVICE_ACCOUNT_JSON": "/sa.json",
		},
		"bad pricing mode": {
			"PAYMENT_PROVIDER": "stub", "RECORDER_URL": "http://x", "PRICING_MODE": "free",
		},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
