// Package app wires configuration, storage, the gateway, the session store
// and the resource clients into one client instance.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	"github.com/Skotchmaster/quest_academy/internal/api"
	"github.com/Skotchmaster/quest_academy/internal/events"
	"github.com/Skotchmaster/quest_academy/internal/gateway"
	"github.com/Skotchmaster/quest_academy/internal/session"
	"github.com/Skotchmaster/quest_academy/internal/storage"
	"github.com/Skotchmaster/quest_academy/pkg/authclient"
	"github.com/Skotchmaster/quest_academy/pkg/config"
	pkgdb "github.com/Skotchmaster/quest_academy/pkg/db"
)

type App struct {
	Log         *slog.Logger
	DB          *gorm.DB
	Credentials *storage.Credentials
	Gateway     *gateway.Client
	Auth        *authclient.Client
	Session     *session.Store
	API         *api.Client
	Events      events.Publisher
}

type Options struct {
	// Navigator receives the 401 redirect; nil disables redirects.
	Navigator gateway.Navigator
	// Ephemeral defaults to a fresh in-memory scope.
	Ephemeral storage.Scope
	Transport http.RoundTripper
}

func New(ctx context.Context, cfg config.Config, l *slog.Logger, opts Options) (*App, error) {
	db, err := pkgdb.Open(ctx, cfg.StateDSN)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}

	durable, err := storage.NewGormScope(ctx, db)
	if err != nil {
		_ = pkgdb.Close(db)
		return nil, fmt.Errorf("durable scope: %w", err)
	}
	ephemeral := opts.Ephemeral
	if ephemeral == nil {
		ephemeral = storage.NewMemoryScope()
	}
	creds := storage.NewCredentials(durable, ephemeral)

	gw, err := gateway.New(gateway.Options{
		BaseURL:     cfg.BaseURL(),
		Credentials: creds,
		Navigator:   opts.Navigator,
		Timeout:     cfg.HTTPTimeout,
		Transport:   opts.Transport,
		Logger:      l,
	})
	if err != nil {
		_ = pkgdb.Close(db)
		return nil, err
	}

	var pub events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		p, err := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaSessionTopic, l)
		if err != nil {
			_ = pkgdb.Close(db)
			return nil, fmt.Errorf("session events: %w", err)
		}
		pub = p
	}

	auth := authclient.NewClient(gw)
	store := session.New(session.Deps{
		Auth:        auth,
		Credentials: creds,
		Events:      pub,
		Logger:      l,
	})
	store.Attach(gw)

	l.Debug("client ready", "base_url", gw.BaseURL(), "state_postgres", pkgdb.IsPostgres(cfg.StateDSN))

	return &App{
		Log:         l,
		DB:          db,
		Credentials: creds,
		Gateway:     gw,
		Auth:        auth,
		Session:     store,
		API:         api.New(gw),
		Events:      pub,
	}, nil
}

func (a *App) Close() error {
	return errors.Join(a.Events.Close(), pkgdb.Close(a.DB))
}
