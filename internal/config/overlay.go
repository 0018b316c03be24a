package config

import "os"

// Env variable aliases kept compatible with the previous deployment; the
// INPUT_ variants are what CI action inputs arrive as.
var (
	folderIDEnv = []string{"GDRIVE_FOLDER_ID", "GOOGLE_DRIVE_FOLDER_ID", "INPUT_GDRIVE_FOLDER_ID"}
	credDataEnv = []string{"GDRIVE_CREDENTIALS_DATA", "INPUT_GDRIVE_CREDENTIALS_DATA"}
	credPathEnv = []string{"GDRIVE_CREDENTIALS_PATH", "GOOGLE_APPLICATION_CREDENTIALS"}
)

// ApplyEnv overlays environment values on top of file/default values.
// Called once by the CLI; the pipeline below it only ever sees the struct.
func ApplyEnv(cfg *Config) {
	if v := firstEnv(folderIDEnv); v != "" {
		cfg.Store.DriveFolderID = v
	}
	if v := firstEnv(credDataEnv); v != "" {
		cfg.Credentials.Data = v
	}
	if v := firstEnv(credPathEnv); v != "" {
		cfg.Credentials.Path = v
	}
	if v := os.Getenv("JOBKO_DATA_DIR"); v != "" {
		cfg.App.DataDir = v
	}
}

// CredentialPaths lists candidate key files in precedence order, ending with
// the conventional local fallback.
func CredentialPaths(cfg Config) []string {
	return []string{cfg.Credentials.Path, "credentials.json"}
}

func firstEnv(names []string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
