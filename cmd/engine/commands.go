package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"jobko-engine/internal/config"
	"jobko-engine/internal/run"
	"jobko-engine/internal/secrets"
	"jobko-engine/internal/store"
)

// buildStore picks the record store: Drive when a folder id is configured,
// a flock-guarded local CSV otherwise.
func buildStore(ctx context.Context, cfg config.Config) (store.RecordStore, error) {
	if cfg.Store.DriveFolderID == "" {
		path := dataPath(cfg, cfg.Store.CSVFileName)
		log.Printf("[store] using local record set %s", path)
		return store.NewLocalStore(path), nil
	}

	key, err := secrets.LoadServiceAccount(secrets.Source{
		Data:  cfg.Credentials.Data,
		Paths: config.CredentialPaths(cfg),
	})
	if err != nil {
		return nil, err
	}
	ts, err := secrets.TokenSource(ctx, key)
	if err != nil {
		return nil, err
	}
	return store.NewDriveStore(ctx, ts, cfg.Store.DriveFolderID, cfg.Store.CSVFileName)
}

func newRunCmd() *cobra.Command {
	var (
		dryRun  bool
		timeout int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scrape the First VVIP section and merge into the record set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if timeout > 0 {
				cfg.Run.TimeoutSeconds = timeout
			}

			ctx := cmd.Context()
			st, err := buildStore(ctx, cfg)
			if err != nil {
				return err
			}

			db, err := store.Open(dataPath(cfg, "engine.db"))
			if err != nil {
				return err
			}
			defer db.Close()

			res, err := run.Once(ctx, cfg, st, db, run.Options{DryRun: dryRun})
			if err != nil {
				return err
			}
			log.Printf("[engine] done: scraped=%d merged=%d", res.Scraped, res.Merged)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "scrape and merge but do not persist")
	cmd.Flags().IntVar(&timeout, "timeout", 0, "overall run deadline in seconds (overrides config)")
	return cmd
}

func newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the stored record set to a local CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			st, err := buildStore(ctx, cfg)
			if err != nil {
				return err
			}
			postings, err := st.Load(ctx)
			if err != nil {
				return err
			}
			b, err := store.EncodeCSV(postings)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return err
			}
			log.Printf("[engine] exported %d records to %s", len(postings), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "records.csv", "output file path")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := store.Open(dataPath(cfg, "engine.db"))
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := db.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, r := range runs {
				fmt.Printf("%s  scraped=%-4d merged=%-5d %s\n", r.StartedAt, r.Scraped, r.Merged, r.Status)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to show")
	return cmd
}

func newCredsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "creds",
		Short: "Manage the Drive service-account key in the OS keychain",
	}

	set := &cobra.Command{
		Use:   "set [keyfile]",
		Short: "Store a service-account key (from a file, or stdin with no argument)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var (
				b   []byte
				err error
			)
			if len(args) == 1 {
				b, err = os.ReadFile(args[0])
			} else {
				b, err = io.ReadAll(os.Stdin)
			}
			if err != nil {
				return err
			}
			if err := secrets.SetServiceAccount(string(b)); err != nil {
				return err
			}
			log.Printf("[creds] stored service account key in keychain (%s)", secrets.KeyringService)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete",
		Short: "Remove the stored service-account key",
		RunE: func(*cobra.Command, []string) error {
			if err := secrets.DeleteServiceAccount(); err != nil {
				return err
			}
			log.Printf("[creds] removed service account key from keychain")
			return nil
		},
	}

	cmd.AddCommand(set, del)
	return cmd
}
