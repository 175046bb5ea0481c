package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	firebase "firebase.google.com/go/v4"
	"github.com/getsentry/sentry-go"
	"github.com/stripe/stripe-go/v74/client"
	"google.golang.org/api/option"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/farellandr/melaka-tickets/internal/payments"
)

const (
	IdentityFirebase = "firebase"
	IdentityLocal    = "local"

	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
	StoreMemory    = "memory"

	ObjectStoreGCS    = "gcs"
	ObjectStoreMemory = "memory"

	MailSendGrid = "sendgrid"
	MailLog      = "log"
)

type Config struct {
	Env        string
	Port       string
	ProjectID  string
	Service    string
	Revision   string
	GCPLogging bool
	SentryDSN  string

	FirebaseCredentials string
	StorageBucket       string

	IdentityBackend    string
	StoreBackend       string
	ObjectStoreBackend string
	MailBackend        string

	LocalAuthSecret         string
	LocalSuperAdminEmail    string
	LocalSuperAdminPassword string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Env:        getenv("APP_ENV", "development"),
		Port:       getenv("PORT", "8080"),
		ProjectID:  os.Getenv("GOOGLE_CLOUD_PROJECT"),
		Service:    getenv("K_SERVICE", "melaka-tickets"),
		Revision:   os.Getenv("K_REVISION"),
		GCPLogging: getbool("GCP_LOGGING"),
		SentryDSN:  os.Getenv("SENTRY_DSN"),

		FirebaseCredentials: os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"),
		StorageBucket:       os.Getenv("STORAGE_BUCKET"),

		IdentityBackend:    getenv("IDENTITY_BACKEND", IdentityFirebase),
		StoreBackend:       getenv("STORE_BACKEND", StoreFirestore),
		ObjectStoreBackend: getenv("OBJECT_STORE_BACKEND", ObjectStoreGCS),
		MailBackend:        getenv("MAIL_BACKEND", MailSendGrid),

		LocalAuthSecret:         os.Getenv("LOCAL_AUTH_SECRET"),
		LocalSuperAdminEmail:    os.Getenv("LOCAL_SUPER_ADMIN_EMAIL"),
		LocalSuperAdminPassword: os.Getenv("LOCAL_SUPER_ADMIN_PASSWORD"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	backends := []struct {
		name    string
		value   string
		allowed []string
	}{
		{"IDENTITY_BACKEND", c.IdentityBackend, []string{IdentityFirebase, IdentityLocal}},
		{"STORE_BACKEND", c.StoreBackend, []string{StoreFirestore, StorePostgres, StoreMemory}},
		{"OBJECT_STORE_BACKEND", c.ObjectStoreBackend, []string{ObjectStoreGCS, ObjectStoreMemory}},
		{"MAIL_BACKEND", c.MailBackend, []string{MailSendGrid, MailLog}},
	}

	for _, b := range backends {
		if !contains(b.allowed, b.value) {
			return fmt.Errorf("invalid %s %q, expected one of %s", b.name, b.value, strings.Join(b.allowed, ", "))
		}
	}

	if c.IdentityBackend == IdentityLocal && c.LocalAuthSecret == "" {
		return fmt.Errorf("LOCAL_AUTH_SECRET is required with IDENTITY_BACKEND=%s", IdentityLocal)
	}

	if c.StorageBucket == "" {
		return fmt.Errorf("STORAGE_BUCKET is required")
	}

	if c.StoreBackend == StorePostgres && (c.DBHost == "" || c.DBName == "") {
		return fmt.Errorf("DB_HOST and DB_NAME are required with STORE_BACKEND=%s", StorePostgres)
	}

	return nil
}

// NeedsFirebase reports whether any configured backend talks to Firebase or Google Cloud.
func (c *Config) NeedsFirebase() bool {
	return c.IdentityBackend == IdentityFirebase || c.StoreBackend == StoreFirestore || c.ObjectStoreBackend == ObjectStoreGCS
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

type StripeConfig struct {
	SecretKey string
	Currency  string
}

func LoadStripeConfig() (*StripeConfig, error) {
	cfg := &StripeConfig{
		SecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		Currency:  getenv("PAYMENT_CURRENCY", payments.DefaultCurrency),
	}

	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}

	return cfg, nil
}

func InitStripeClient(cfg *StripeConfig) *client.API {
	sc := &client.API{}
	sc.Init(cfg.SecretKey, nil)

	return sc
}

type SendGridConfig struct {
	APIKey      string
	SenderEmail string
	SenderName  string
}

func LoadSendGridConfig() (*SendGridConfig, error) {
	cfg := &SendGridConfig{
		APIKey:      os.Getenv("SENDGRID_API_KEY"),
		SenderEmail: os.Getenv("SENDER_EMAIL"),
		SenderName:  getenv("SENDER_NAME", "Melaka Tickets"),
	}

	if cfg.APIKey == "" || cfg.SenderEmail == "" {
		return nil, fmt.Errorf("SENDGRID_API_KEY and SENDER_EMAIL are required")
	}

	return cfg, nil
}

// ClientOptions returns the credentials shared by the Firebase and Google Cloud clients.
// Without an explicit service account the application default credentials are used.
func (c *Config) ClientOptions() []option.ClientOption {
	if c.FirebaseCredentials == "" {
		return nil
	}

	return []option.ClientOption{option.WithCredentialsJSON([]byte(c.FirebaseCredentials))}
}

func InitFirebaseApp(ctx context.Context, cfg *Config) (*firebase.App, error) {
	conf := &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}

	app, err := firebase.NewApp(ctx, conf, cfg.ClientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}

	return app, nil
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func InitSentry(cfg *Config) error {
	if cfg.SentryDSN == "" {
		return nil
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Env,
		Release:          cfg.Revision,
		AttachStacktrace: true,
	})
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getbool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}

	return false
}
