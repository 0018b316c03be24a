package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the explicit configuration handed to the pipeline entry point.
// Precedence, highest first: command-line flags, environment variables,
// yaml file, defaults. Core packages receive these values as parameters
// and never touch the environment themselves.
type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Scrape struct {
		BaseURL       string  `yaml:"base_url"`
		DetailLookup  bool    `yaml:"detail_lookup"`
		DetailWorkers int     `yaml:"detail_workers"`
		HostRPS       float64 `yaml:"host_rps"`
		CacheLogos    bool    `yaml:"cache_logos"`
	} `yaml:"scrape"`

	Run struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"run"`

	Store struct {
		CSVFileName   string `yaml:"csv_file_name"`
		DriveFolderID string `yaml:"drive_folder_id"`
	} `yaml:"store"`

	Credentials struct {
		Path string `yaml:"path"`
		Data string `yaml:"-"` // env only, never persisted
	} `yaml:"credentials"`
}

func Default() Config {
	var cfg Config
	cfg.App.DataDir = "."
	cfg.Scrape.BaseURL = "https://www.jobkorea.co.kr"
	cfg.Scrape.DetailLookup = true
	cfg.Scrape.DetailWorkers = 4
	cfg.Scrape.HostRPS = 2
	cfg.Run.TimeoutSeconds = 120
	cfg.Store.CSVFileName = "jobkorea_FirstVVIP.csv"
	return cfg
}

// Load reads the yaml file over the defaults. A missing file is fine; a
// malformed one is not.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	var errs []string
	if cfg.Scrape.BaseURL == "" {
		errs = append(errs, "scrape.base_url is required")
	}
	if cfg.Scrape.DetailWorkers < 0 {
		errs = append(errs, "scrape.detail_workers must be >= 0")
	}
	if cfg.Run.TimeoutSeconds <= 0 {
		errs = append(errs, "run.timeout_seconds must be > 0")
	}
	if cfg.Store.CSVFileName == "" {
		errs = append(errs, "store.csv_file_name is required")
	}
	if len(errs) > 0 {
		msg := "config validation failed:"
		for _, e := range errs {
			msg += "\n- " + e
		}
		return errors.New(msg)
	}
	return nil
}
