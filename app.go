package main

import (
	"context"
	"io"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"Reposition/internal/auth"
	"Reposition/internal/db"
	"Reposition/internal/locale"
	"Reposition/internal/notify"
	"Reposition/internal/ratelimiter"
	"Reposition/internal/render"
	"Reposition/internal/session"
	"Reposition/pkg/repoapi"
)

// app holds the components the commands work with
type app struct {
	config   Config
	rdb      *redis.Client
	storage  session.Storage
	session  *session.Store
	api      *repoapi.Client
	auth     *auth.Store
	limiter  *ratelimiter.Limiter
	renderer *render.Renderer
}

// newApp connects the components as configured, the session is loaded from its storage
func newApp(ctx context.Context, config Config, out io.Writer) (*app, error) {
	a := &app{
		config:   config,
		renderer: render.New(out, locale.Get(config.Language)),
	}

	if config.Redis.Enabled() {
		rdb, err := db.Open(ctx, config.Redis)
		if err != nil {
			return nil, err
		}
		a.rdb = rdb
		a.limiter = ratelimiter.New(rdb, config.Session.KeyPrefix)
	}

	switch config.Session.Storage {
	case storageRedis:
		a.storage = session.NewRedisStorage(a.rdb)
	default:
		a.storage = session.NewFileStorage(config.Session.Path)
	}
	a.session = session.NewStore(a.storage, config.Session.KeyPrefix)
	if err := a.session.Init(ctx); err != nil {
		a.close()
		return nil, errors.Wrap(err, "failed to load session")
	}

	api, err := repoapi.NewClient(config.API, a.session, nil)
	if err != nil {
		a.close()
		return nil, err
	}
	a.api = api
	a.auth = auth.NewStore(api, a.session)
	return a, nil
}

// notifier returns the configured notifier, the log when there's no bot
func (a *app) notifier() (notify.Notifier, error) {
	if !a.config.TelegramBot.Enabled() {
		return notify.LogNotifier{}, nil
	}
	return notify.NewTelegramNotifier(a.config.TelegramBot, a.renderer.Locale())
}

func (a *app) close() {
	db.Close(a.rdb)
	log.Debug("closed")
}
