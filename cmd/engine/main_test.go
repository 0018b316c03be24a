package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setFlags(t *testing.T, cfgPath, dataDir string) {
	t.Helper()
	prevConfig, prevDataDir := flagConfig, flagDataDir
	flagConfig, flagDataDir = cfgPath, dataDir
	t.Cleanup(func() { flagConfig, flagDataDir = prevConfig, prevDataDir })
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigHonorsFileDataDir(t *testing.T) {
	t.Setenv("JOBKO_DATA_DIR", "")
	fileDir := filepath.Join(t.TempDir(), "from-file")
	path := writeConfig(t, "app:\n  data_dir: "+fileDir+"\n")
	setFlags(t, path, "")

	cfg, err := loadConfig()
	require.NoError(t, err)
	require.Equal(t, fileDir, cfg.App.DataDir)
	require.DirExists(t, fileDir)
}

func TestLoadConfigFlagBeatsFileAndEnv(t *testing.T) {
	envDir := filepath.Join(t.TempDir(), "from-env")
	t.Setenv("JOBKO_DATA_DIR", envDir)
	path := writeConfig(t, "app:\n  data_dir: ignored-by-flag\n")
	flagDir := filepath.Join(t.TempDir(), "from-flag")
	setFlags(t, path, flagDir)

	cfg, err := loadConfig()
	require.NoError(t, err)
	require.Equal(t, flagDir, cfg.App.DataDir)
}

func TestLoadConfigEnvBeatsFile(t *testing.T) {
	envDir := filepath.Join(t.TempDir(), "from-env")
	t.Setenv("JOBKO_DATA_DIR", envDir)
	path := writeConfig(t, "app:\n  data_dir: ignored-by-env\n")
	setFlags(t, path, "")

	cfg, err := loadConfig()
	require.NoError(t, err)
	require.Equal(t, envDir, cfg.App.DataDir)
}
