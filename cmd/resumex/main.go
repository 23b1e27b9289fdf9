package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/resumex/internal/logging"
	"github.com/cognicore/resumex/pkg/resumex"
	"github.com/cognicore/resumex/pkg/resumex/config"
	"github.com/cognicore/resumex/pkg/resumex/store"
)

type globalFlags struct {
	configPath string
	logLevel   string
	logFile    string
	store      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:          "resumex",
		Short:        "Extract structured candidate records from résumés",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML config file (defaults apply when empty)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&flags.store, "store", "", "store driver override: memory, sqlite, postgres, redis")

	rootCmd.AddCommand(extractCmd(flags))
	rootCmd.AddCommand(batchCmd(flags))
	rootCmd.AddCommand(fetchCmd(flags))
	rootCmd.AddCommand(keysCmd(flags))
	rootCmd.AddCommand(deleteCmd(flags))
	rootCmd.AddCommand(lexiconCmd(flags))

	return rootCmd
}

// app bundles what a subcommand needs.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	comp   *config.Components
	store  store.Store
	engine *resumex.Engine
}

func (a *app) close() {
	if a.engine != nil {
		if err := a.engine.Close(); err != nil {
			a.logger.Warn("Failed to close store", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

func loadConfig(flags *globalFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.logFile != "" {
		cfg.Logging.File = flags.logFile
	}
	if flags.store != "" {
		cfg.Store.Driver = flags.store
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// buildApp loads config, models and the store. withStore is false for
// commands that never persist.
func buildApp(ctx context.Context, flags *globalFlags, withStore bool) (*app, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	loader := config.Loader{Config: cfg, Logger: logger}
	comp, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load components: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, comp: comp}
	if withStore {
		st, err := loader.OpenStore(ctx)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		a.store = st
	}

	a.engine = resumex.New(resumex.Options{
		Pipeline:          comp.Pipeline,
		General:           comp.General,
		Custom:            comp.Custom,
		EducationKeywords: comp.EducationKeywords,
		Store:             a.store,
		Workers:           cfg.Workers,
		Logger:            logger,
	})
	return a, nil
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
