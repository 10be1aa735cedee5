package main

import (
	"context"
	"flag"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/jlowell/salesdw/internal/config"
	"github.com/jlowell/salesdw/internal/loader"
	"github.com/jlowell/salesdw/internal/logging"
	"github.com/jlowell/salesdw/internal/pipeline"
	"github.com/jlowell/salesdw/internal/run"
	"github.com/jlowell/salesdw/internal/store"
	"github.com/jlowell/salesdw/internal/web"
)

func main() {
	once := flag.Bool("once", false, "load extracts, run the pipeline once, and exit")
	flag.Parse()

	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"db_max_conns", cfg.Database.MaxConns,
		"loader_dir", cfg.Loader.Dir,
	)

	// Parse and configure connection pool
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		slog.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	// Connect to database
	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	// Log which database we connected to
	if u, err := url.Parse(cfg.Database.URL); err == nil {
		dbName := strings.TrimPrefix(u.Path, "/")
		slog.Info("connected to database", "name", dbName)
	} else {
		slog.Info("connected to database")
	}

	// Wire the three warehouse layers and the pipeline
	p := &pipeline.Pipeline{
		Raw:         store.NewPostgresRaw(pool),
		Cleansed:    store.NewPostgresCleansed(pool),
		Dimensional: store.NewPostgresDimensional(pool),
		Sink:        run.SlogSink{},
	}
	l := &loader.Loader{Raw: p.Raw, Dir: cfg.Loader.Dir}

	if *once {
		runOnce(ctx, p, l)
		return
	}

	server := web.NewServer(p, l, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}

// runOnce loads the extracts, executes one pipeline run, and exits
// non-zero if the load or a stage fails. Quality findings are advisory
// and only logged.
func runOnce(ctx context.Context, p *pipeline.Pipeline, l *loader.Loader) {
	rc := run.New(p.Sink)
	if _, err := l.Run(ctx, rc); err != nil {
		slog.Error("extract load failed", "run_id", rc.ID, "error", err)
		os.Exit(1)
	}

	res, err := p.Execute(ctx)
	if err != nil {
		os.Exit(1)
	}

	if !res.Report.Clean() {
		slog.Warn("quality findings present", "run_id", res.RunID)
	}
	slog.Info("run completed", "run_id", res.RunID, "stages", len(res.Metrics))
}
