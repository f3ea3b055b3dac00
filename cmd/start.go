package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"prsk-lab/core/config"
	"prsk-lab/core/database"
	"prsk-lab/core/loader"
	"prsk-lab/core/logger"
	"prsk-lab/core/middleware/auth"
	"prsk-lab/core/middleware/metrics"
	"prsk-lab/core/oauth"
	"prsk-lab/core/server"
	"prsk-lab/core/session"
	"prsk-lab/core/storage"

	authfeature "prsk-lab/feature/auth"
	"prsk-lab/feature/character"
	"prsk-lab/feature/eventbonus"
	"prsk-lab/feature/furniture"
	"prsk-lab/feature/integrity"
	"prsk-lab/feature/models"
	"prsk-lab/feature/setting"
	"prsk-lab/feature/unit"
	"prsk-lab/feature/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "prsk-lab/docs/swagger"
)

// Paths served without a session by the page gate.
var publicPrefixes = []string{"/api", "/auth", "/healthz", "/metrics", "/swagger"}

// @title prsk-lab API
// @version 1.0
// @description API for the Project SEKAI fan community tools.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the prsk-lab server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if !cfg.Server.IsValidEnvironment() {
			log.Fatalf("Unknown environment: %q", cfg.Server.Environment)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		migrateFirst, _ := cmd.Flags().GetBool("migrate")
		if cfg.Database.Driver == database.DriverSQLite {
			if err := models.AutoMigrate(db); err != nil {
				logg.Fatal("Failed to migrate sqlite database", zap.Error(err))
			}
		} else if migrateFirst {
			if err := database.MigrateUp(cfg.Database); err != nil {
				logg.Fatal("Failed to apply migrations", zap.Error(err))
			}
		}
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

		// 4. Initialize Storage, Sessions and OAuth
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		sessions, err := session.NewManager(cfg.Session)
		if err != nil {
			logg.Fatal("Failed to create session manager", zap.Error(err))
		}
		provider, err := oauth.NewProvider(cfg.OAuth)
		if err != nil {
			logg.Fatal("Failed to create OAuth provider", zap.Error(err))
		}

		// 5. Initialize Fiber App
		app := server.New(cfg.Server, logg)
		app.Get("/metrics", metrics.Handler())
		app.Get("/swagger/*", swagger.HandlerDefault)

		users := user.NewFeature(db, logg, cfg.OAuth.AdminEmails)
		authCfg := auth.Config{
			Sessions:       sessions,
			Roles:          users.Service(),
			Logger:         logg,
			LoginPath:      "/auth/login",
			PublicPrefixes: publicPrefixes,
		}
		app.Use(auth.Gate(authCfg))
		api := app.Group("/api", auth.New(authCfg))
		admin := api.Group("/admin", auth.RequireRole(auth.RoleAdmin))

		// 6. Register Features
		characters := character.NewFeature(db, logg, cfg.Cache)
		settings := setting.NewFeature(db, logg)
		secure := cfg.Session.Secure || cfg.Server.IsProduction()

		mgr := loader.NewManager()
		mgr.Register(authfeature.NewFeature(provider, sessions, users.Service(), secure, logg))
		mgr.Register(unit.NewFeature(db, logg, cfg.Cache, characters.Service().InvalidateCache))
		mgr.Register(characters)
		mgr.Register(users)
		mgr.Register(settings)
		mgr.Register(furniture.NewFeature(db, logg, store, cfg.Storage, settings.Service()))
		mgr.Register(eventbonus.NewFeature(characters.Service(), logg))
		mgr.Register(integrity.NewFeature(db, store, cfg.Storage, logg))

		loaded, err := mgr.LoadAll(loader.Routes{Public: app, API: api, Admin: admin})
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// Pages come last so API and auth routes take precedence
		if cfg.Server.StaticDir != "" {
			app.Static("/", cfg.Server.StaticDir, fiber.Static{Index: "index.html"})
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	startCmd.Flags().Bool("migrate", false, "Apply pending SQL migrations before serving")
	RootCmd.AddCommand(startCmd)
}
