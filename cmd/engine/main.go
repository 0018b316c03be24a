package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"jobko-engine/internal/config"
)

var (
	flagConfig  string
	flagDataDir string
)

func main() {
	log.SetFlags(log.LstdFlags)

	root := &cobra.Command{
		Use:           "engine",
		Short:         "JobKorea First VVIP scrape engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config.yml (default <data-dir>/config.yml)")
	root.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "engine data directory")

	root.AddCommand(newRunCmd(), newExportCmd(), newHistoryCmd(), newCredsCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Fatalf("[engine] %v", err)
	}
}

// loadConfig resolves the effective config: defaults, then yaml, then env,
// then flags, highest last. The config file itself is looked up in the
// flag/env data dir (or the cwd) before the file's own data_dir applies.
func loadConfig() (config.Config, error) {
	explicitDir := flagDataDir
	if explicitDir == "" {
		explicitDir = os.Getenv("JOBKO_DATA_DIR")
	}

	cfgPath := flagConfig
	if cfgPath == "" {
		dir := explicitDir
		if dir == "" {
			dir = "."
		}
		cfgPath = filepath.Join(dir, "config.yml")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return cfg, err
	}
	config.ApplyEnv(&cfg)
	if explicitDir != "" {
		cfg.App.DataDir = explicitDir
	}

	if err := os.MkdirAll(cfg.App.DataDir, 0o755); err != nil {
		return cfg, err
	}
	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func dataPath(cfg config.Config, name string) string {
	return filepath.Join(cfg.App.DataDir, name)
}
