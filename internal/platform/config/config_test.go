package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tibacare/storefront/internal/i18n"
)

func TestLoadWithDefaults(t *testing.T) {
	env := map[string]string{
		"STOREFRONT_FIRESTORE_PROJECT_ID": "storefront-dev",
	}

	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Redis.Addr != defaultRedisAddr {
		t.Errorf("expected default redis addr, got %s", cfg.Redis.Addr)
	}
	if cfg.Catalog.DefaultLanguage != i18n.English {
		t.Errorf("expected default language en, got %s", cfg.Catalog.DefaultLanguage)
	}
	if cfg.Pricing.TaxRate != defaultTaxRate {
		t.Errorf("unexpected default tax rate: %v", cfg.Pricing.TaxRate)
	}
	if len(cfg.Pricing.ShippingOptions) != 2 {
		t.Fatalf("expected default shipping options, got %v", cfg.Pricing.ShippingOptions)
	}
	if cfg.Pricing.ShippingOptions[0].ID != "standard" || cfg.Pricing.ShippingOptions[0].Cost != 15 {
		t.Errorf("unexpected first default shipping option: %+v", cfg.Pricing.ShippingOptions[0])
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"STOREFRONT_SERVER_PORT":              "9090",
		"STOREFRONT_SERVER_READ_TIMEOUT":      "20s",
		"STOREFRONT_SERVER_IDLE_TIMEOUT":      "2m",
		"STOREFRONT_FIRESTORE_PROJECT_ID":     "storefront-prod",
		"STOREFRONT_FIRESTORE_EMULATOR_HOST":  "localhost:8090",
		"STOREFRONT_REDIS_ADDR":               "redis.internal:6380",
		"STOREFRONT_REDIS_DB":                 "3",
		"STOREFRONT_CATALOG_DEFAULT_LANGUAGE": "ar",
		"STOREFRONT_PRICING_TAX_RATE":         "0.15",
		"STOREFRONT_PRICING_SHIPPING_OPTIONS": "pickup=Store Pickup|الاستلام من المتجر=0;courier=Courier|مندوب توصيل=25.5",
	}

	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("unexpected port: %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 20*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.IdleTimeout != 2*time.Minute {
		t.Errorf("unexpected idle timeout: %s", cfg.Server.IdleTimeout)
	}
	if cfg.Firestore.EmulatorHost != "localhost:8090" {
		t.Errorf("unexpected emulator host: %s", cfg.Firestore.EmulatorHost)
	}
	if cfg.Redis.Addr != "redis.internal:6380" || cfg.Redis.DB != 3 {
		t.Errorf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.Catalog.DefaultLanguage != i18n.Arabic {
		t.Errorf("unexpected default language: %s", cfg.Catalog.DefaultLanguage)
	}
	if cfg.Pricing.TaxRate != 0.15 {
		t.Errorf("unexpected tax rate: %v", cfg.Pricing.TaxRate)
	}
	if len(cfg.Pricing.ShippingOptions) != 2 {
		t.Fatalf("expected 2 shipping options, got %d", len(cfg.Pricing.ShippingOptions))
	}
	pickup := cfg.Pricing.ShippingOptions[0]
	if pickup.ID != "pickup" || pickup.Cost != 0 {
		t.Errorf("unexpected pickup option: %+v", pickup)
	}
	if got := pickup.Label.Resolve(i18n.Arabic); got != "الاستلام من المتجر" {
		t.Errorf("unexpected pickup arabic label: %s", got)
	}
	if cfg.Pricing.ShippingOptions[1].Cost != 25.5 {
		t.Errorf("unexpected courier cost: %v", cfg.Pricing.ShippingOptions[1].Cost)
	}
}

func TestLoadReadsDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "STOREFRONT_FIRESTORE_PROJECT_ID=from-dotenv\nexport STOREFRONT_SERVER_PORT=7070\n# comment\nSTOREFRONT_PRICING_TAX_RATE=\"0.1\"\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(WithoutSystemEnv(), WithEnvFile(envFile))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Firestore.ProjectID != "from-dotenv" {
		t.Errorf("expected dotenv project id, got %s", cfg.Firestore.ProjectID)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("expected dotenv port 7070, got %s", cfg.Server.Port)
	}
	if cfg.Pricing.TaxRate != 0.1 {
		t.Errorf("expected dotenv tax rate 0.1, got %v", cfg.Pricing.TaxRate)
	}
}

func TestLoadEnvMapOverridesDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("STOREFRONT_SERVER_PORT=7070\nSTOREFRONT_FIRESTORE_PROJECT_ID=dotenv\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(
		WithEnvMap(map[string]string{"STOREFRONT_SERVER_PORT": "9999"}),
		WithoutSystemEnv(),
		WithEnvFile(envFile),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "9999" {
		t.Errorf("expected env map to win over dotenv, got %s", cfg.Server.Port)
	}
}

func TestLoadValidation(t *testing.T) {
	_, err := Load(WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err == nil {
		t.Fatal("expected validation error for missing firestore project")
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	fields := validationErr.Fields()
	if len(fields) != 1 || fields[0] != "Firestore.ProjectID" {
		t.Errorf("unexpected missing fields: %v", fields)
	}
}

func TestLoadRejectsInvalidTaxRate(t *testing.T) {
	env := map[string]string{
		"STOREFRONT_FIRESTORE_PROJECT_ID": "storefront-dev",
		"STOREFRONT_PRICING_TAX_RATE":     "1.2",
	}

	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err == nil {
		t.Fatal("expected validation error for tax rate out of range")
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestShippingOptionsParsingSkipsMalformedEntries(t *testing.T) {
	env := map[string]string{
		"STOREFRONT_FIRESTORE_PROJECT_ID":     "storefront-dev",
		"STOREFRONT_PRICING_SHIPPING_OPTIONS": "good=Good=10;;broken;=NoID=5;negative=Neg=-1",
	}

	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(cfg.Pricing.ShippingOptions) != 1 {
		t.Fatalf("expected only the well-formed option, got %+v", cfg.Pricing.ShippingOptions)
	}
	if cfg.Pricing.ShippingOptions[0].ID != "good" {
		t.Errorf("unexpected option id: %s", cfg.Pricing.ShippingOptions[0].ID)
	}
}
