package main

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mherrera-dev/refaccionaria/internal/config"
	"github.com/mherrera-dev/refaccionaria/internal/db"
	router "github.com/mherrera-dev/refaccionaria/internal/http"
	"github.com/mherrera-dev/refaccionaria/internal/http/handlers"
	rl "github.com/mherrera-dev/refaccionaria/internal/http/rate_limiter"
	"github.com/mherrera-dev/refaccionaria/internal/logger"
	"github.com/mherrera-dev/refaccionaria/internal/repo"
	"github.com/mherrera-dev/refaccionaria/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", false)
		fallback.Fatal().Err(err).Msg("could not load configuration")
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("could not connect to redis")
	}

	database, err := db.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}
	defer database.Close()

	if err := db.InitSchema(database); err != nil {
		log.Fatal().Err(err).Msg("could not initialize schema")
	}

	sessions := session.NewRedisStore(rdb, cfg.Session.TTL)

	srv := handlers.New(
		repo.NewPostgresUserRepository(database),
		repo.NewPostgresProductRepository(database),
		repo.NewPostgresSaleRepository(database),
		sessions,
		handlers.CookieSettings{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			MaxAge: cfg.Session.TTL,
		},
		log,
	)

	gate := router.NewSessionGate(sessions, cfg.Session.CookieName, log)
	r := router.NewRouter(srv, gate, router.Options{
		RateLimit: cfg.RateLimit.Enabled,
		StaticDir: cfg.Static.Dir,
	})

	if cfg.RateLimit.Enabled {
		go rl.StartVisitorCleanupLoop()
	}

	log.Info().Str("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("server listening")
	if err := http.ListenAndServe(":"+cfg.App.Port, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
