package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"tournament-entry/internal/pricing"
)

const (
	DefaultSiteURL = "https://batts-events-2.co.uk"

	// PlaceholderAPIKey is sent when RECORDER_API_KEY is unset. It is not a
	// credential; the server warns while it is in use.
	PlaceholderAPIKey = "change-me"
)

type Config struct {
	HTTPAddr  string
	SiteURL   string
	StaticDir string

	PaymentProvider     string
	StripeSecretKey     string
	StripeWebhookSecret string
	PricingMode         pricing.Mode

	RecorderBackend string
	RecorderURL     string
	RecorderAPIKey  string

	SpreadsheetID            string
	GoogleServiceAccountJSON string
	SheetName                string

	TelegramToken string
	AdminTGIDs    []int64
}

// UsingPlaceholderAPIKey reports whether no recorder API key was configured.
func (c Config) UsingPlaceholderAPIKey() bool {
	return c.RecorderAPIKey == PlaceholderAPIKey
}

type fileConfig struct {
	HTTPAddr           string `yaml:"http_addr"`
	SiteURL            string `yaml:"site_url"`
	StaticDir          string `yaml:"static_dir"`
	PaymentProvider    string `yaml:"payment_provider"`
	PricingMode        string `yaml:"pricing_mode"`
	RecorderBackend    string `yaml:"recorder_backend"`
	RecorderURL        string `yaml:"recorder_url"`
	SpreadsheetID      string `yaml:"spreadsheet_id"`
	ServiceAccountJSON string `yaml:"service_account_json"`
	Sheet              string `yaml:"sheet"`
	AdminTGIDs         string `yaml:"admin_tg_ids"`
}

// FromEnv builds the configuration from CONFIG_FILE (optional YAML) and the
// environment. Environment values win. Secrets are read from the
// environment only.
func FromEnv() (Config, error) {
	var f fileConfig
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	var c Config
	c.HTTPAddr = env("HTTP_ADDR", f.HTTPAddr, ":8080")
	c.SiteURL = strings.TrimRight(env("SITE_URL", f.SiteURL, DefaultSiteURL), "/")
	c.StaticDir = env("STATIC_DIR", f.StaticDir, "")

	c.PaymentProvider = strings.ToLower(env("PAYMENT_PROVIDER", f.PaymentProvider, "stripe"))
	c.StripeSecretKey = strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY"))
	c.StripeWebhookSecret = strings.TrimSpace(os.Getenv("STRIPE_WEBHOOK_SECRET"))

	mode, err := pricing.ParseMode(env("PRICING_MODE", f.PricingMode, string(pricing.ModeTest)))
	if err != nil {
		return c, err
	}
	c.PricingMode = mode

	c.RecorderBackend = strings.ToLower(env("RECORDER_BACKEND", f.RecorderBackend, "appsscript"))
	c.RecorderURL = env("RECORDER_URL", f.RecorderURL, "")
	c.RecorderAPIKey = env("RECORDER_API_KEY", "", PlaceholderAPIKey)

	c.SpreadsheetID = env("GOOGLE_SHEETS_SPREADSHEET_ID", f.SpreadsheetID, "")
	c.GoogleServiceAccountJSON = env("GOOGLE_SERVICE_ACCOUNT_JSON", f.ServiceAccountJSON, "")
	c.SheetName = env("GOOGLE_SHEETS_SHEET", f.Sheet, "Entries")

	c.TelegramToken = strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	c.AdminTGIDs = parseAdminIDs(env("ADMIN_TG_IDS", f.AdminTGIDs, ""))

	if err := c.validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c *Config) validate() error {
	switch c.PaymentProvider {
	case "stripe":
		if c.StripeSecretKey == "" {
			return fmt.Errorf("STRIPE_SECRET_KEY is empty")
		}
		if c.StripeWebhookSecret == "" {
			return fmt.Errorf("STRIPE_WEBHOOK_SECRET is empty")
		}
	case "stub":
		if c.StripeWebhookSecret == "" {
			c.StripeWebhookSecret = "change-me"
		}
	default:
		return fmt.Errorf("unknown payment provider: %s", c.PaymentProvider)
	}

	switch c.RecorderBackend {
	case "appsscript":
		if c.RecorderURL == "" {
			return fmt.Errorf("RECORDER_URL is empty")
		}
	case "sheets":
		if c.SpreadsheetID == "" {
			return fmt.Errorf("GOOGLE_SHEETS_SPREADSHEET_ID is empty")
		}
		if c.GoogleServiceAccountJSON == "" {
			return fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_JSON is empty")
		}
	default:
		return fmt.Errorf("unknown recorder backend: %s", c.RecorderBackend)
	}
	return nil
}

func env(key, fromFile, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	if v := strings.TrimSpace(fromFile); v != "" {
		return v
	}
	return fallback
}

func parseAdminIDs(raw string) []int64 {
	var out []int64
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
