package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/abhisheksonias/agrigo-backend/internal/config"
	"github.com/abhisheksonias/agrigo-backend/internal/database"
	"github.com/abhisheksonias/agrigo-backend/internal/modules/analytics"
	"github.com/abhisheksonias/agrigo-backend/internal/modules/auth"
	"github.com/abhisheksonias/agrigo-backend/internal/modules/customer"
	"github.com/abhisheksonias/agrigo-backend/internal/modules/invoice"
	"github.com/abhisheksonias/agrigo-backend/internal/modules/order"
	"github.com/abhisheksonias/agrigo-backend/internal/modules/product"
	"github.com/abhisheksonias/agrigo-backend/internal/modules/transport"
	"github.com/abhisheksonias/agrigo-backend/internal/modules/user"
	"github.com/abhisheksonias/agrigo-backend/internal/platform/storage"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	app := &cli.App{
		Name:  "agrigo-api",
		Usage: "order management API server",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API server",
				Action: serve,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("Application failed")
	}
}

func serve(_ *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Connected to the database")

	if err := database.Migrate(db); err != nil {
		return err
	}
	log.Info("Migrations up to date")

	files, err := storage.NewDiskStore(cfg.StorageDir, cfg.PublicBaseURL)
	if err != nil {
		return err
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService).RegisterRoutes(router)

	authService := auth.NewService(userRepo, cfg.JWTSecret)
	auth.NewHandler(authService).RegisterRoutes(router)

	// Uploaded files are public.
	router.Handle("/files/*", http.StripPrefix("/files/",
		http.FileServer(http.Dir(files.Root()))))

	// ── Domain modules (session required) ───────────────────
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(authService))

		customerRepo := customer.NewPostgresRepository(db)
		customerService := customer.NewService(customerRepo)
		customer.NewHandler(customerService).RegisterRoutes(r)

		transportRepo := transport.NewPostgresRepository(db)
		transportService := transport.NewService(transportRepo)
		transport.NewHandler(transportService).RegisterRoutes(r)

		productRepo := product.NewPostgresRepository(db)
		productService := product.NewService(productRepo, files)
		product.NewHandler(productService).RegisterRoutes(r)

		orderRepo := order.NewPostgresRepository(db)
		orderService := order.NewService(orderRepo)
		order.NewHandler(orderService).RegisterRoutes(r)

		analyticsService := analytics.NewService(orderService)
		analytics.NewHandler(analyticsService).RegisterRoutes(r)

		company := invoice.CompanyInfo{
			Name:    "Chandan Agrigo",
			Address: "Deesa, Gujarat",
			Phone:   "+91 99999 99999",
			Email:   "info@chandanagrigo.com",
		}
		invoice.NewHandler(orderService, company).RegisterRoutes(r)
	})

	// ── Start Server ─────────────────────────────────────────
	addr := ":" + cfg.AppPort
	log.WithField("addr", addr).Info("API server starting")
	return http.ListenAndServe(addr, router)
}
