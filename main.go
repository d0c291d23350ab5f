package main

import (
	"strings"

	"github.com/Vishkec/monopoly/pkg/routes"
	"github.com/Vishkec/monopoly/platform/cache"
	"github.com/Vishkec/monopoly/platform/config"
	"github.com/Vishkec/monopoly/platform/database"
	"github.com/Vishkec/monopoly/platform/logging"
	socket "github.com/Vishkec/monopoly/platform/sockets"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

func snapshotStore(cfg config.Config, log *logrus.Entry) cache.SnapshotStore {
	if cfg.RedisURL == "" {
		log.Info("REDIS_URL not set, keeping snapshots in memory")
		return cache.NewMemoryStore()
	}
	return cache.NewRedisStore(cache.CreateRedisPool(cfg.RedisURL), cfg.SnapshotTTL)
}

func resultsArchive(cfg config.Config, log *logrus.Entry) database.ResultsArchive {
	if cfg.DBAddr == "" {
		log.Info("DB_ADDR not set, keeping results in memory")
		return database.NewMemoryArchive()
	}
	db := database.PostgreSQLConnection(cfg)
	if err := database.CreateSchema(db); err != nil {
		log.WithError(err).Fatal("creating schema failed")
	}
	return database.NewPostgresArchive(db)
}

func main() {
	logging.Init()
	cfg := config.Load()
	log := logging.For("server")

	archive := resultsArchive(cfg, log)
	reg := socket.NewRegistry(
		snapshotStore(cfg, log),
		archive,
		socket.SeatTokens(cfg.JWTSecret, cfg.SnapshotTTL),
		logging.For("relay"),
	)

	app := fiber.New()
	app.Use(cors.New(cors.Config{AllowOrigins: strings.Join(cfg.AllowedOrigins, ",")}))
	routes.GameRoutes(app, reg, archive)
	routes.RelayRoutes(app, reg, logging.For("websocket"))
	routes.SeatRoutes(app, reg, cfg.JWTSecret)

	server, err := socket.NewSocketIOServer(reg, logging.For("socketio"))
	if err != nil {
		log.WithError(err).Fatal("socket.io server failed")
	}
	go func() {
		if err := socket.ServeSocketIO(cfg, server); err != nil {
			log.WithError(err).Fatal("socket.io relay stopped")
		}
	}()

	log.WithField("addr", cfg.HTTPAddr).Info("listening")
	log.Fatal(app.Listen(cfg.HTTPAddr))
}
