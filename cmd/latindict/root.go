package main

import (
	"fmt"
	"strconv"

	"github.com/japaniel/latindict/pkg/config"
	"github.com/japaniel/latindict/pkg/db"
	"github.com/japaniel/latindict/pkg/editor"
	"github.com/japaniel/latindict/pkg/legacy"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose     bool
	configPath  string
	dbPath      string
	skipMigrate bool

	cfg      *config.Config
	logger   *zap.Logger
	store    *db.Store
	migrated int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "latindict",
	Short: "A personal Latin dictionary kept in a local database",
	Long: `latindict stores word/definition pairs in a local SQLite database.

On every run the database is created if needed and any dictionary left in the
legacy flat store is moved into it once.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.Storage.Path = dbPath
		}

		logger, err = newLogger(cfg.Logging.Level, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		store, err = db.Open(cmd.Context(), cfg.Storage.Path,
			db.WithDriver(cfg.Storage.Driver),
			db.WithLogger(logger),
			db.WithBatchSize(cfg.Import.BatchSize),
		)
		if err != nil {
			return err
		}

		if skipMigrate {
			return nil
		}
		// Migration runs before any read so migrated entries are visible.
		migrated, err = store.MigrateLegacyIfPresent(cmd.Context(), legacy.NewFileStore(cfg.Legacy.Path), cfg.Legacy.Key)
		if err != nil {
			return fmt.Errorf("legacy migration from %s: %w", cfg.Legacy.Path, err)
		}
		return nil
	},
}

// shutdown closes the database and flushes the logger. It runs after every
// command, including failed ones.
func shutdown() {
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("closing database", zap.Error(err))
		}
		store = nil
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg.Build()
}

func newSession() *editor.Session {
	return editor.NewSession(store, logger)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not migrate the legacy flat store on startup")
}
