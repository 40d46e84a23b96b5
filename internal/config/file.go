package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	fileMode        = 0o600
	dirMode         = 0o700
	tempFilePattern = ".config-*.toml.tmp"
)

// ErrExists is returned by WriteFile when the target exists and overwrite
// was not requested.
var ErrExists = errors.New("config file already exists")

type fileSchema struct {
	API        apiSchema        `toml:"api"`
	HTTP       httpSchema       `toml:"http"`
	Credential credentialSchema `toml:"credential"`
	Store      storeSchema      `toml:"store"`
	Rockie     rockieSchema     `toml:"rockie"`
	Log        logSchema        `toml:"log"`
}

type apiSchema struct {
	ActivitiesURL string `toml:"activities_url"`
	RockieURL     string `toml:"rockie_url"`
	PageSize      int    `toml:"page_size"`
}

type httpSchema struct {
	Timeout string `toml:"timeout"`
}

type credentialSchema struct {
	Key     string `toml:"key"`
	Backend string `toml:"backend"`
	Dir     string `toml:"dir,omitempty"`
}

type storeSchema struct {
	Path string `toml:"path,omitempty"`
}

type rockieSchema struct {
	DefaultName string `toml:"default_name"`
}

type logSchema struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

func toSchema(c Config) fileSchema {
	return fileSchema{
		API: apiSchema{
			ActivitiesURL: c.API.ActivitiesURL,
			RockieURL:     c.API.RockieURL,
			PageSize:      c.API.PageSize,
		},
		HTTP: httpSchema{Timeout: c.HTTP.Timeout.String()},
		Credential: credentialSchema{
			Key:     c.Credential.Key,
			Backend: c.Credential.Backend,
			Dir:     c.Credential.Dir,
		},
		Store:  storeSchema{Path: c.Store.Path},
		Rockie: rockieSchema{DefaultName: c.Rockie.DefaultName},
		Log:    logSchema{Level: c.Log.Level, File: c.Log.File},
	}
}

// Encode renders c as TOML in the layout Load reads.
func Encode(c Config) ([]byte, error) {
	data, err := toml.Marshal(toSchema(c))
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// WriteFile atomically writes c to path with 0600 permissions.
func WriteFile(path string, c Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
	}

	data, err := Encode(c)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tempFile.Chmod(fileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}
	cleanup = false
	return nil
}
