package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/servly/admin-console/api"
	"github.com/servly/admin-console/auth"
	"github.com/servly/admin-console/categories"
	"github.com/servly/admin-console/console"
	"github.com/servly/admin-console/customers"
	"github.com/servly/admin-console/dashboard"
	"github.com/servly/admin-console/guard"
	"github.com/servly/admin-console/internal/config"
	"github.com/servly/admin-console/notify"
	"github.com/servly/admin-console/providers"
	"github.com/servly/admin-console/roles"
	"github.com/servly/admin-console/services"
	"github.com/servly/admin-console/session"
	"github.com/servly/admin-console/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("console failed")
	}
	log.Info().Msg("console finished")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load()

	c := config.New()
	cfg, err := config.LoadFile(c, config.GetEnv("CONFIG_FILE", "console.yaml"))
	if err != nil {
		return fmt.Errorf("loading config overlay: %w", err)
	}

	setupLogging(cfg.GetLogLevel())
	displayAppname(cfg.GetAppName())

	sessions, err := session.NewStore(cfg, session.WithLogger(log.Logger))
	if err != nil {
		return fmt.Errorf("creating session store: %w", err)
	}

	nav := console.NewNavigator(guard.New(sessions), console.WithLogger(log.Logger))

	client, err := api.New(cfg.GetAPIBaseURL(),
		api.WithSession(sessions),
		api.WithNavigator(nav),
		api.WithLogger(log.Logger),
		api.WithTimeout(time.Duration(cfg.GetRequestTimeoutSeconds())*time.Second),
	)
	if err != nil {
		return fmt.Errorf("creating api client: %w", err)
	}

	center := notify.NewCenter()
	defer center.Close()
	center.Subscribe(func(n notify.Notification) {
		log.Info().Str("kind", string(n.Kind)).Msg(n.Message)
	})

	authService, err := auth.NewService(cfg, client, sessions, auth.WithLogger(log.Logger))
	if err != nil {
		return fmt.Errorf("creating auth service: %w", err)
	}

	ctx := context.Background()

	if !sessions.IsAuthenticated() {
		creds := auth.Credentials{Email: cfg.GetAdminEmail(), Password: cfg.GetAdminPassword()}
		if err := authService.Login(ctx, creds); err != nil {
			return fmt.Errorf("login: %s: %w", sessions.Reason(), err)
		}
	}
	if exp := sessions.TokenExpiry(); !exp.IsZero() {
		log.Info().Time("expiry", exp).Msg("access token expiry")
	}
	nav.Resume()

	roleStore := roles.NewStore(client, center, store.WithLogger[roles.Role](log.Logger))
	customerStore := customers.NewStore(client, center, store.WithLogger[customers.Customer](log.Logger))
	providerStore := providers.NewStore(client, center, store.WithLogger[providers.Provider](log.Logger))
	categoryStore := categories.NewStore(client, center, store.WithLogger[categories.Category](log.Logger))
	serviceStore := services.NewStore(client, center, store.WithLogger[services.Service](log.Logger))
	metrics := dashboard.NewStore(client, center, dashboard.WithLogger(log.Logger))

	if err := metrics.FetchSummary(ctx); err != nil {
		log.Warn().Err(err).Msg("summary unavailable")
	} else if s := metrics.Summary(); s != nil {
		log.Info().Int("totalRequests", s.TotalRequests).Float64("totalRevenue", s.TotalRevenue).Msg("dashboard summary")
	}

	fetches := []struct {
		name  string
		fetch func(context.Context) error
		count func() int
	}{
		{"roles", roleStore.FetchAll, func() int { return len(roleStore.Items()) }},
		{"customers", customerStore.FetchAll, func() int { return len(customerStore.Items()) }},
		{"providers", providerStore.FetchAll, func() int { return len(providerStore.Items()) }},
		{"categories", categoryStore.FetchAll, func() int { return len(categoryStore.Items()) }},
		{"services", serviceStore.FetchAll, func() int { return len(serviceStore.Items()) }},
	}
	for _, f := range fetches {
		if err := f.fetch(ctx); err != nil {
			log.Warn().Err(err).Str("resource", f.name).Msg("fetch failed")
			continue
		}
		log.Info().Str("resource", f.name).Int("count", f.count()).Msg("fetched")
	}

	log.Info().Str("location", nav.Location()).Str("state", sessions.State().String()).Msg("session snapshot")
	return nil
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
