package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tibacare/storefront/internal/domain"
	"github.com/tibacare/storefront/internal/i18n"
)

const (
	defaultEnvFile      = ".env"
	defaultPort         = "8080"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 120 * time.Second
	defaultRedisAddr    = "localhost:6379"
	defaultTaxRate      = 0.05
	defaultCacheTTL     = 5 * time.Minute
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Firestore FirestoreConfig
	Redis     RedisConfig
	Catalog   CatalogConfig
	Pricing   PricingConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// FirestoreConfig stores catalog database parameters.
type FirestoreConfig struct {
	ProjectID    string
	EmulatorHost string
}

// RedisConfig stores connection parameters for the collection store backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CatalogConfig controls catalog presentation behaviour.
type CatalogConfig struct {
	DefaultLanguage i18n.Language
	CacheTTL        time.Duration
}

// PricingConfig carries the tax rate and the configured shipping options.
type PricingConfig struct {
	TaxRate         float64
	ShippingOptions []domain.ShippingOption
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the application configuration by combining defaults, .env overrides,
// and environment variables.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}

	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	cfg := Config{
		Server: ServerConfig{
			Port:         stringWithDefault(lookup, "STOREFRONT_SERVER_PORT", defaultPort),
			ReadTimeout:  durationWithDefault(lookup, "STOREFRONT_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "STOREFRONT_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "STOREFRONT_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Firestore: FirestoreConfig{
			ProjectID:    stringWithDefault(lookup, "STOREFRONT_FIRESTORE_PROJECT_ID", ""),
			EmulatorHost: stringWithDefault(lookup, "STOREFRONT_FIRESTORE_EMULATOR_HOST", ""),
		},
		Redis: RedisConfig{
			Addr:     stringWithDefault(lookup, "STOREFRONT_REDIS_ADDR", defaultRedisAddr),
			Password: stringWithDefault(lookup, "STOREFRONT_REDIS_PASSWORD", ""),
			DB:       intWithDefault(lookup, "STOREFRONT_REDIS_DB", 0),
		},
		Catalog: CatalogConfig{
			DefaultLanguage: languageWithDefault(lookup, "STOREFRONT_CATALOG_DEFAULT_LANGUAGE", i18n.Default),
			CacheTTL:        durationWithDefault(lookup, "STOREFRONT_CATALOG_CACHE_TTL", defaultCacheTTL),
		},
		Pricing: PricingConfig{
			TaxRate:         floatWithDefault(lookup, "STOREFRONT_PRICING_TAX_RATE", defaultTaxRate),
			ShippingOptions: shippingOptionsWithDefault(lookup, "STOREFRONT_PRICING_SHIPPING_OPTIONS"),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "Server.Port")
	}
	if cfg.Firestore.ProjectID == "" {
		missing = append(missing, "Firestore.ProjectID")
	}
	if cfg.Redis.Addr == "" {
		missing = append(missing, "Redis.Addr")
	}
	if cfg.Pricing.TaxRate < 0 || cfg.Pricing.TaxRate >= 1 {
		missing = append(missing, "Pricing.TaxRate")
	}
	for i, option := range cfg.Pricing.ShippingOptions {
		if option.ID == "" || option.Cost < 0 {
			missing = append(missing, fmt.Sprintf("Pricing.ShippingOptions[%d]", i))
		}
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}
		value = strings.Trim(value, "\"'")
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func floatWithDefault(lookup func(string) (string, bool), key string, fallback float64) float64 {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func languageWithDefault(lookup func(string) (string, bool), key string, fallback i18n.Language) i18n.Language {
	if value, ok := lookup(key); ok && value != "" {
		if lang, ok := i18n.Parse(value); ok {
			return lang
		}
	}
	return fallback
}

// shippingOptionsWithDefault parses a semicolon-separated option list where each
// entry has the form id=english|arabic=cost, e.g.
// "standard=Standard Shipping|الشحن العادي=15;express=Express Shipping|الشحن السريع=30".
func shippingOptionsWithDefault(lookup func(string) (string, bool), key string) []domain.ShippingOption {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return defaultShippingOptions()
	}

	entries := strings.Split(raw, ";")
	options := make([]domain.ShippingOption, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 3)
		if len(parts) != 3 {
			continue
		}
		id := strings.TrimSpace(parts[0])
		cost, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if id == "" || err != nil || cost < 0 {
			continue
		}
		labels := strings.SplitN(parts[1], "|", 2)
		english := strings.TrimSpace(labels[0])
		arabic := ""
		if len(labels) == 2 {
			arabic = strings.TrimSpace(labels[1])
		}
		options = append(options, domain.ShippingOption{
			ID:    id,
			Label: i18n.Bilingual(english, arabic),
			Cost:  cost,
		})
	}
	if len(options) == 0 {
		return defaultShippingOptions()
	}
	return options
}

func defaultShippingOptions() []domain.ShippingOption {
	return []domain.ShippingOption{
		{ID: "standard", Label: i18n.Bilingual("Standard Shipping", "الشحن العادي"), Cost: 15},
		{ID: "express", Label: i18n.Bilingual("Express Shipping", "الشحن السريع"), Cost: 30},
	}
}
