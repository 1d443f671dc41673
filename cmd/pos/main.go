package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/saifulohyr/riyadh-coffee-pos/internal/checkout"
	"github.com/saifulohyr/riyadh-coffee-pos/internal/config"
	posthttp "github.com/saifulohyr/riyadh-coffee-pos/internal/http"
	"github.com/saifulohyr/riyadh-coffee-pos/internal/publisher"
	"github.com/saifulohyr/riyadh-coffee-pos/internal/report"
	"github.com/saifulohyr/riyadh-coffee-pos/internal/repository"
	"github.com/saifulohyr/riyadh-coffee-pos/internal/tax"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	app := &cli.App{
		Name:  "pos",
		Usage: "Riyadh Coffee point-of-sale backend",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the POS HTTP server",
				Action: func(c *cli.Context) error {
					return serve(c.Context, log)
				},
			},
			{
				Name:  "migrate",
				Usage: "apply database migrations and exit",
				Action: func(c *cli.Context) error {
					return migrate(log)
				},
			},
			{
				Name:  "seed",
				Usage: "load the café menu into an empty catalog",
				Action: func(c *cli.Context) error {
					return seed(c.Context, log)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openRepository(cfg *config.Config) (*repository.Repository, *repository.Credentials, error) {
	creds := &repository.Credentials{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		DBName:            cfg.DBName,
		MigrationsDirPath: cfg.MigrationsPath,
	}

	repo, err := repository.NewRepository(creds)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return repo, creds, nil
}

func serve(ctx context.Context, log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	repo, creds, err := openRepository(cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.RunMigrations(creds); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database migrations completed")

	rate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return fmt.Errorf("invalid TAX_RATE %q: %w", cfg.TaxRate, err)
	}

	calc := tax.NewCalculator(rate)
	checkoutService := checkout.NewService(repo, repo, calc, log)
	reportService := report.NewService(repo)

	transactionsHandler := posthttp.NewTransactionsHandler(checkoutService, repo, cfg.RequestTimeout, log)
	productsHandler := posthttp.NewProductsHandler(repo, cfg.RequestTimeout, log)
	reportsHandler := posthttp.NewReportsHandler(reportService, cfg.RequestTimeout, log)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(posthttp.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(posthttp.SessionAuthMiddleware(repo))

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", transactionsHandler.Create)
			r.Get("/", transactionsHandler.List)
			r.Get("/{transaction_id}", transactionsHandler.Get)
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productsHandler.List)
			r.Get("/{product_id}", productsHandler.Get)
		})
		r.Route("/reports", func(r chi.Router) {
			r.Get("/today", reportsHandler.TodaySales)
			r.Get("/today/transactions", reportsHandler.TodayTransactions)
			r.Get("/sales", reportsHandler.SalesByDateRange)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("POS server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	if len(cfg.KafkaBrokers) > 0 {
		poller := publisher.NewOutboxPoller(repo, log, cfg.KafkaBrokers...)
		g.Go(func() error {
			log.Infof("sale-event poller publishing to %v", cfg.KafkaBrokers)
			poller.Run(ctx)
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func migrate(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	repo, creds, err := openRepository(cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.RunMigrations(creds); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database migrations completed")
	return nil
}

func seed(ctx context.Context, log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	repo, creds, err := openRepository(cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.RunMigrations(creds); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	existing, err := repo.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Infof("catalog already has %d products, skipping seed", len(existing))
		return nil
	}

	for i := range menu {
		if err := repo.CreateProduct(ctx, &menu[i]); err != nil {
			return err
		}
	}
	log.Infof("seeded %d products", len(menu))
	return nil
}
