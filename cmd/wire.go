package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/beplus/beplus/internal/api"
	"github.com/beplus/beplus/internal/config"
	"github.com/beplus/beplus/internal/credential"
	"github.com/beplus/beplus/internal/resource"
	"github.com/beplus/beplus/internal/secrets"
	chainstore "github.com/beplus/beplus/internal/secrets/chain"
	filestore "github.com/beplus/beplus/internal/secrets/file"
	passstore "github.com/beplus/beplus/internal/secrets/pass"
	"github.com/beplus/beplus/internal/store"
	"github.com/spf13/cobra"
)

// callLogKeep bounds the diagnostic call log; older calls are pruned on start.
const callLogKeep = 1000

type wiredApp struct {
	cfg        config.Config
	secrets    secrets.Store
	gate       *credential.Gate
	store      *store.Store
	activities *resource.Activities
	rockies    *resource.Rockies
	logger     *slog.Logger
	closers    []io.Closer
}

// loadConfig reads the config named by --config, or the default location.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newSecretStore(cfg config.CredentialConfig) (secrets.Store, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return filestore.NewStore(cfg.Dir), nil
	case config.BackendPass:
		return passstore.NewStore(), nil
	case config.BackendChain:
		s, err := chainstore.NewPassFirstWithFileFallback(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("wire secret store chain: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown credential backend %q", cfg.Backend)
	}
}

func newLogger(cfg config.LogConfig) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	return slog.New(handler), f, nil
}

// wireApp builds every dependency the API-facing commands and the TUI need.
func wireApp(cmd *cobra.Command) (*wiredApp, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	secretStore, err := newSecretStore(cfg.Credential)
	if err != nil {
		return nil, err
	}

	logger, logFile, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	if err := store.EnsureDir(cfg.Store.Path); err != nil {
		logFile.Close()
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	ctx := cmd.Context()
	if err := st.CallLog().Prune(ctx, callLogKeep); err != nil {
		logger.Warn("failed to prune call log", "error", err)
	}

	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}
	doer := api.WithLogging(api.NewClient(httpClient), st.CallLog(), logger)
	gate := credential.NewGate(secretStore, cfg.Credential.Key)

	logger.Debug("wired",
		"activities_url", cfg.API.ActivitiesURL,
		"rockie_url", cfg.API.RockieURL,
		"credential_backend", cfg.Credential.Backend,
		"store", cfg.Store.Path,
	)

	return &wiredApp{
		cfg:        cfg,
		secrets:    secretStore,
		gate:       gate,
		store:      st,
		activities: resource.NewActivities(gate, doer, cfg.API.ActivitiesURL, cfg.API.PageSize),
		rockies:    resource.NewRockies(gate, doer, cfg.API.RockieURL),
		logger:     logger,
		closers:    []io.Closer{st, logFile},
	}, nil
}

func (a *wiredApp) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// identity returns the header label for the stored token and whether one is
// stored at all.
func (a *wiredApp) identity(ctx context.Context) (string, bool) {
	token, err := a.gate.AcquireToken(ctx)
	if err != nil {
		if !errors.Is(err, credential.ErrAuthMissing) {
			a.logger.Warn("failed to read credential", "error", err)
		}
		return "", false
	}
	claims, err := credential.Inspect(token)
	if err != nil || claims.Identity() == "" {
		return "signed in", true
	}
	return claims.Identity(), true
}
