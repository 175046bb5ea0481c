package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"

	"github.com/farellandr/melaka-tickets/config"
	"github.com/farellandr/melaka-tickets/internal/identity"
	"github.com/farellandr/melaka-tickets/internal/logger"
	"github.com/farellandr/melaka-tickets/internal/mailer"
	"github.com/farellandr/melaka-tickets/internal/models"
	"github.com/farellandr/melaka-tickets/internal/objectstore"
	"github.com/farellandr/melaka-tickets/internal/payments"
	"github.com/farellandr/melaka-tickets/internal/store"
	fsstore "github.com/farellandr/melaka-tickets/internal/store/firestore"
	"github.com/farellandr/melaka-tickets/internal/store/memory"
	pgstore "github.com/farellandr/melaka-tickets/internal/store/postgres"
)

const seedCreator = "seed"

// Dependencies are the clients shared by every function. They are created once per process.
type Dependencies struct {
	Log       logger.Provider
	Identity  identity.Provider
	LocalAuth *identity.LocalProvider
	Store     store.Store
	Bucket    objectstore.Bucket
	Mailer    mailer.Sender
	Payments  payments.Issuer
	Sentry    bool

	closers []func() error
}

func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			log.Printf("failed to close client: %v", err)
		}
	}
}

func buildDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	deps := &Dependencies{
		Log:    logger.FromContext,
		Sentry: cfg.SentryDSN != "",
	}

	var app *firebase.App
	if cfg.NeedsFirebase() {
		var err error
		if app, err = config.InitFirebaseApp(ctx, cfg); err != nil {
			return nil, err
		}
	}

	if err := deps.initIdentity(ctx, cfg, app); err != nil {
		return nil, fmt.Errorf("failed to initialize identity: %w", err)
	}

	if err := deps.initStore(ctx, cfg, app); err != nil {
		return nil, fmt.Errorf("failed to initialize document store: %w", err)
	}

	if err := deps.initBucket(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	if err := deps.initMailer(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}

	stripeCfg, err := config.LoadStripeConfig()
	if err != nil {
		return nil, err
	}
	deps.Payments = payments.NewStripeIssuer(config.InitStripeClient(stripeCfg), stripeCfg.Currency)

	return deps, nil
}

func (d *Dependencies) initIdentity(ctx context.Context, cfg *config.Config, app *firebase.App) error {
	switch cfg.IdentityBackend {
	case config.IdentityLocal:
		d.LocalAuth = identity.NewLocalProvider(cfg.LocalAuthSecret)
		d.Identity = d.LocalAuth
	default:
		p, err := identity.NewFirebaseProvider(ctx, app)
		if err != nil {
			return err
		}
		d.Identity = p
	}

	return nil
}

func (d *Dependencies) initStore(ctx context.Context, cfg *config.Config, app *firebase.App) error {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		d.Store = memory.NewStore()
	case config.StorePostgres:
		db, err := config.InitDatabase(cfg)
		if err != nil {
			return err
		}

		s, err := pgstore.NewStore(db)
		if err != nil {
			return err
		}
		d.Store = s

		if sqlDB, err := db.DB(); err == nil {
			d.closers = append(d.closers, sqlDB.Close)
		}
	default:
		client, err := app.Firestore(ctx)
		if err != nil {
			return err
		}
		d.Store = fsstore.NewStore(client)
		d.closers = append(d.closers, client.Close)
	}

	return nil
}

func (d *Dependencies) initBucket(ctx context.Context, cfg *config.Config) error {
	if cfg.ObjectStoreBackend == config.ObjectStoreMemory {
		d.Bucket = objectstore.NewMemoryBucket(cfg.StorageBucket)
		return nil
	}

	client, err := storage.NewClient(ctx, cfg.ClientOptions()...)
	if err != nil {
		return err
	}

	d.Bucket = objectstore.NewGCSBucket(client, cfg.StorageBucket)
	d.closers = append(d.closers, client.Close)

	return nil
}

func (d *Dependencies) initMailer(cfg *config.Config) error {
	if cfg.MailBackend == config.MailLog {
		d.Mailer = mailer.NewLogSender(d.Log)
		return nil
	}

	sgCfg, err := config.LoadSendGridConfig()
	if err != nil {
		return err
	}

	d.Mailer = mailer.NewSendGridSender(sgCfg.APIKey, sgCfg.SenderName, sgCfg.SenderEmail)

	return nil
}

// seedSuperAdmin registers the first Super Admin on the local identity provider, which starts empty.
func seedSuperAdmin(ctx context.Context, deps *Dependencies, email, password string) error {
	if deps.LocalAuth == nil || email == "" || password == "" {
		return nil
	}

	uid, err := deps.LocalAuth.CreateUser(ctx, email, password, string(models.RoleSuperAdmin))
	if err != nil {
		return err
	}

	_, err = deps.Store.Create(ctx, models.AdminsCollection, uid, &models.AdminRecord{
		UID:       uid,
		Name:      string(models.RoleSuperAdmin),
		Email:     email,
		Role:      models.RoleSuperAdmin,
		CreatedBy: seedCreator,
		CreatedAt: time.Now().UTC(),
	})

	return err
}
