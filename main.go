package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"edims-backend/config"
	"edims-backend/controllers"
	"edims-backend/database"
	"edims-backend/middlewares"
	"edims-backend/routes"
	"edims-backend/utils"
)

func main() {
	cfg, missing := config.Load()
	log := config.GetLogger()
	if !cfg.IsDev() {
		config.UseJSONLogging()
	}
	if len(missing) > 0 {
		// In development we warn and keep going so the server can start
		// against a local database; production refuses to run half-configured.
		log.WithField("missing", missing).Warn("required environment variables are not set")
		if !cfg.IsDev() {
			log.Fatal("refusing to start in production without required configuration")
		}
	}

	if err := database.Connect(cfg); err != nil {
		log.WithError(err).Fatal("could not connect to database")
	}
	if err := database.AutoMigrate(database.DB); err != nil {
		log.WithError(err).Fatal("database migration failed")
	}
	if err := database.SeedAdmin(database.DB, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.WithError(err).Fatal("admin seed failed")
	}

	middlewares.Init(cfg)
	middlewares.SetDevMode(cfg.IsDev())
	controllers.Mailer = utils.NewMailer(cfg.SMTP)

	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    cfg.Server.BodyLimitBytes,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowCredentials: false, // using Bearer tokens, not cookies
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.Server.RateLimitMax,
		Expiration: time.Duration(cfg.Server.RateLimitSecs) * time.Second,
	}))

	routes.Register(app)

	log.WithField("port", cfg.Server.Port).Info("starting API server")
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
