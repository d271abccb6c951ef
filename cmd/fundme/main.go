package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"github.com/openfund/fundme/internal/api"
	"github.com/openfund/fundme/internal/chain"
	"github.com/openfund/fundme/internal/config"
	"github.com/openfund/fundme/internal/database"
	"github.com/openfund/fundme/internal/deploy"
	"github.com/openfund/fundme/internal/domain"
	"github.com/openfund/fundme/internal/export"
	"github.com/openfund/fundme/internal/journal"
	"github.com/openfund/fundme/internal/oracle"
	"github.com/openfund/fundme/internal/worker"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	app := &cli.App{
		Name:  "fundme",
		Usage: "USD-floored funding ledger with price-oracle valuation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "network",
				Usage: "network profile: local, sepolia or mainnet (overrides NETWORK)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "deploy the ledger and serve the HTTP API",
				Action: runServe,
			},
			{
				Name:  "export",
				Usage: "write the funding statement from journal history",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Value: "statement.xlsx",
						Usage: "output xlsx path",
					},
				},
				Action: runExport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) config.Config {
	cfg := config.Load()
	if network := c.String("network"); network != "" {
		cfg.Network = network
	}
	return cfg
}

func runServe(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig(c)

	jnl, pool, err := openJournal(ctx, cfg)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	bank := chain.NewBank()
	result, err := deploy.Run(cfg, bank, jnl)
	if err != nil {
		return fmt.Errorf("deploying ledger: %w", err)
	}

	// Only live feeds need periodic refreshing.
	if feed, ok := result.Feed.(*oracle.HTTPFeed); ok {
		priceWorker := worker.NewPriceWorker(feed, cfg.QuoteInterval)
		go priceWorker.Run(ctx)
	}

	if cfg.StatementPath != "" {
		exportSvc := export.NewService(result.Ledger, export.NewXlsxWriter(cfg.StatementPath))
		statementWorker := worker.NewStatementWorker(exportSvc, cfg.StatementInterval)
		go statementWorker.Run(ctx)
	}

	if cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set, withdraw endpoint is unprotected")
	}

	srv := api.NewServer(cfg.HTTPPort, api.NewHandler(result.Ledger, bank, jnl), cfg.AdminAPIKey)

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
	return nil
}

func runExport(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig(c)
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("export requires DATABASE_URL")
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	owner, err := domain.ParseAddress(cfg.OwnerAddress)
	if err != nil {
		return fmt.Errorf("parsing owner address: %w", err)
	}

	statement, err := export.FromJournal(ctx, journal.NewPostgres(pool), owner)
	if err != nil {
		return fmt.Errorf("building statement: %w", err)
	}

	out := c.String("out")
	if err := export.NewXlsxWriter(out).Write(ctx, statement); err != nil {
		return fmt.Errorf("writing statement: %w", err)
	}

	log.Printf("Statement written to %s (%d funders)", out, len(statement.Rows))
	return nil
}

// openJournal picks the journal implementation: PostgreSQL with embedded
// migrations when DATABASE_URL is set, in-memory otherwise.
func openJournal(ctx context.Context, cfg config.Config) (journal.Journal, *pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		slog.Warn("DATABASE_URL not set, journal history is in-memory only")
		return journal.NewMemory(), nil, nil
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("creating migrations sub-fs: %w", err)
	}
	if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}

	return journal.NewPostgres(pool), pool, nil
}
