package service

import (
	"log/slog"

	redisx "github.com/suyay-events/suyay-go/internal/redis"
	postgresrepo "github.com/suyay-events/suyay-go/internal/repository/postgres"
	redisrepo "github.com/suyay-events/suyay-go/internal/repository/redis"
	"github.com/suyay-events/suyay-go/internal/service/auth"
	"github.com/suyay-events/suyay-go/internal/service/catalog"
	"github.com/suyay-events/suyay-go/internal/service/engagement"
	"github.com/suyay-events/suyay-go/internal/service/events"
	"github.com/suyay-events/suyay-go/internal/service/profiles"
	"github.com/suyay-events/suyay-go/internal/service/purchases"
	"github.com/suyay-events/suyay-go/internal/service/support"
	"github.com/suyay-events/suyay-go/internal/service/tickets"
	"github.com/suyay-events/suyay-go/internal/service/users"
	"github.com/suyay-events/suyay-go/internal/uow"
)

// Services bundles every domain service behind one handle for the
// transport layer.
type Services struct {
	Auth       *auth.Service
	Users      *users.Service
	Catalog    *catalog.Service
	Profiles   *profiles.Service
	Events     *events.Service
	Purchases  *purchases.Service
	Tickets    *tickets.Service
	Engagement *engagement.Service
	Support    *support.Service
}

type Deps struct {
	Store  *postgresrepo.Store
	Cache  *redisrepo.Cache
	PubSub *redisx.EventsPubSub
	Auth   auth.Config
	Log    *slog.Logger
}

func New(d Deps) *Services {
	txs := uow.NewUoW(d.Store)

	return &Services{
		Auth:       auth.New(d.Store.Users(), d.Auth, d.Log),
		Users:      users.New(d.Store.Users()),
		Catalog:    catalog.New(d.Store, d.Cache),
		Profiles:   profiles.New(d.Store, d.Log),
		Events:     events.New(d.Store, txs, d.Cache, d.PubSub, d.Log),
		Purchases:  purchases.New(d.Store, txs, d.Log),
		Tickets:    tickets.New(d.Store.Tickets(), d.Store.Purchases(), d.Store.Profiles(), tickets.NewIssuer(0), d.Log),
		Engagement: engagement.New(d.Store.Engagement(), d.Store.Events()),
		Support:    support.New(d.Store, d.Log),
	}
}
