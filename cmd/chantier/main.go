package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexanderramin/chantier/internal/cli"
	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/intelligence"
	"github.com/alexanderramin/chantier/internal/knowledge"
	"github.com/alexanderramin/chantier/internal/llm"
	"github.com/alexanderramin/chantier/internal/planning"
	"github.com/alexanderramin/chantier/internal/repository"
	"github.com/alexanderramin/chantier/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// DB path: env var or default ~/.chantier/chantier.db
	dbPath := os.Getenv("CHANTIER_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".chantier", "chantier.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	planCfg := planning.LoadConfig()
	agg := planning.NewAggregator(
		repository.NewSQLiteProjectRepo(database),
		repository.NewSQLitePhaseRepo(database),
		repository.NewSQLiteLotRepo(database),
		repository.NewSQLiteTaskRepo(database),
		planning.WithFetchTimeout(planCfg.FetchTimeout),
		planning.WithLogger(logger.Named("planning")),
	)

	table := knowledge.Default()
	prompts := intelligence.NewPromptBuilder(table)
	limits := planCfg.Limits()

	// The engine is wired only when enabled; without it, context and
	// prompt commands still work.
	var client llm.LLMClient
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(logger.Named("llm"))
		}
		client = llm.NewOllamaClient(llmCfg, observer)
	}

	app := &cli.App{
		Contexts: agg,
		Plans:    intelligence.NewPlanService(agg, client, prompts, limits),
		Import:   service.NewImportService(db.NewSQLiteUnitOfWork(database), table, logger.Named("import")),
		Limits:   limits,
		Prompts:  prompts,
		IsTerminal: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
	}
	if client != nil {
		app.Assist = intelligence.NewAssistService(agg, client, nil, prompts, limits)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// newLogger writes JSON logs to stderr. Only warnings and errors are shown
// unless CHANTIER_DEBUG is set.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug, _ := strconv.ParseBool(os.Getenv("CHANTIER_DEBUG")); debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
