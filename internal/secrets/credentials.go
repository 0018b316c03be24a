// Package secrets loads the Google service-account key used for the Drive
// record store. Lookup order: OS keychain, then the credential env value
// (raw JSON or base64-encoded JSON), then credential files. The same
// base64-or-raw tolerance applies everywhere because CI systems tend to
// mangle multi-line JSON secrets.
package secrets

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

const (
	// KeyringService groups the engine's secrets in the OS keychain.
	KeyringService = "jobko-engine"
	KeyringAccount = "gdrive-service-account"
)

// Source carries the non-keychain credential locations, already resolved
// from config/env by the caller; this package never reads the process
// environment itself.
type Source struct {
	Data  string   // env-provided JSON or base64(JSON)
	Paths []string // candidate key files, tried in order
}

func SetServiceAccount(jsonKey string) error {
	if strings.TrimSpace(jsonKey) == "" {
		return errors.New("service account key is empty")
	}
	return keyring.Set(KeyringService, KeyringAccount, jsonKey)
}

func DeleteServiceAccount() error {
	return keyring.Delete(KeyringService, KeyringAccount)
}

// LoadServiceAccount resolves the service-account key JSON.
func LoadServiceAccount(src Source) ([]byte, error) {
	if v, err := keyring.Get(KeyringService, KeyringAccount); err == nil && strings.TrimSpace(v) != "" {
		b, derr := decodeKey(v)
		if derr != nil {
			return nil, fmt.Errorf("keychain entry: %w", derr)
		}
		return b, nil
	}

	if strings.TrimSpace(src.Data) != "" {
		b, err := decodeKey(src.Data)
		if err != nil {
			return nil, fmt.Errorf("credential data: %w", err)
		}
		return b, nil
	}

	for _, p := range src.Paths {
		if p == "" {
			continue
		}
		raw, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		b, derr := decodeKey(string(raw))
		if derr != nil {
			return nil, fmt.Errorf("credential file %s: %w", p, derr)
		}
		return b, nil
	}

	return nil, errors.New("no service account credentials found (keychain, env, or credential file)")
}

// TokenSource builds the Drive-scoped token source from a key.
func TokenSource(ctx context.Context, jsonKey []byte) (oauth2.TokenSource, error) {
	conf, err := google.JWTConfigFromJSON(jsonKey, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}
	return conf.TokenSource(ctx), nil
}

// decodeKey accepts raw JSON or base64-encoded JSON.
func decodeKey(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty credential value")
	}
	if strings.HasPrefix(s, "{") {
		if !json.Valid([]byte(s)) {
			return nil, errors.New("not valid JSON")
		}
		return []byte(s), nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.New("neither JSON nor base64(JSON)")
	}
	if !json.Valid(b) {
		return nil, errors.New("base64 payload is not valid JSON")
	}
	return b, nil
}
