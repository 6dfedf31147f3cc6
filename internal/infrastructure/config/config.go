// Package config reads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StoreDynamoDB = "dynamodb"
	StorePostgres = "postgres"
)

// Tables names the DynamoDB tables, one per entity.
type Tables struct {
	Orders       string `env:"ORDERS_TABLE" envDefault:"work_orders"`
	Users        string `env:"USERS_TABLE" envDefault:"users"`
	Transactions string `env:"TRANSACTIONS_TABLE" envDefault:"transactions"`
	Sales        string `env:"SALES_TABLE" envDefault:"sales"`
	Events       string `env:"EVENTS_TABLE" envDefault:"work_order_events"`
	EmailLogs    string `env:"EMAIL_LOGS_TABLE" envDefault:"email_logs"`
	AuditLogs    string `env:"AUDIT_LOGS_TABLE" envDefault:"audit_logs"`
}

type DynamoDB struct {
	Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" envDefault:"local"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" envDefault:"local"`
	Endpoint        string `env:"DYNAMODB_ENDPOINT"`
	Tables          Tables
}

type Email struct {
	APIURL string `env:"EMAIL_API_URL" envDefault:"https://api.resend.com"`
	APIKey string `env:"EMAIL_API_KEY"`
	From   string `env:"EMAIL_FROM"`
}

// Enabled reports whether enough is configured to talk to the provider.
func (e Email) Enabled() bool {
	return e.APIKey != "" && e.From != ""
}

type Payments struct {
	MercadoPagoAccessToken string `env:"MERCADOPAGO_ACCESS_TOKEN"`
	Mock                   bool   `env:"PAYMENT_GATEWAY_MOCK"`
	LegacyMock             bool   `env:"MERCADOPAGO_MOCK"`
}

// MockEnabled reports whether card charges are simulated.
func (p Payments) MockEnabled() bool {
	return p.Mock || p.LegacyMock
}

// Config is the full service configuration.
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	StoreDriver string `env:"STORE_DRIVER" envDefault:"dynamodb"`
	DatabaseURI string `env:"DATABASE_URI"`

	ShopName           string  `env:"SHOP_NAME" envDefault:"TallerPro"`
	TaxRate            float64 `env:"TAX_RATE" envDefault:"0.115"`
	DefaultOrderStatus string  `env:"DEFAULT_ORDER_STATUS" envDefault:"intake"`

	SessionSecret string        `env:"SESSION_SECRET"`
	PINIndexKey   string        `env:"PIN_INDEX_KEY"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	DynamoDB DynamoDB
	Email    Email
	Payments Payments
}

// Parse reads the configuration from the environment and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	switch c.StoreDriver {
	case StoreDynamoDB:
	case StorePostgres:
		if c.DatabaseURI == "" {
			errs = append(errs, errors.New("DATABASE_URI is required when STORE_DRIVER=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	if c.TaxRate < 0 || c.TaxRate >= 1 {
		errs = append(errs, fmt.Errorf("TAX_RATE must be in [0,1): %v", c.TaxRate))
	}
	if strings.TrimSpace(c.SessionSecret) == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	return errors.Join(errs...)
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// PINKey is the key of the PIN lookup index. It defaults to the session
// secret; changing it leaves existing users on the slower unindexed path
// until their PIN is set again.
func (c *Config) PINKey() string {
	if c.PINIndexKey != "" {
		return c.PINIndexKey
	}
	return c.SessionSecret
}
