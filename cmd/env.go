package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ascent-cf/ascent/internal/backend"
	"github.com/ascent-cf/ascent/internal/config"
	"github.com/ascent-cf/ascent/internal/handle"
	"github.com/ascent-cf/ascent/internal/logging"
	"github.com/ascent-cf/ascent/internal/store"
	"github.com/ascent-cf/ascent/internal/verify"
)

// env is everything a command needs, built from the resolved config.
type env struct {
	cfg    config.Config
	logger *zap.Logger
	store  *store.Store
	svc    *verify.Service
}

// setup resolves config and opens the logger, store and backend client.
// Callers must Close the returned env.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logPath := cfg.LogFile
	if logPath == "" {
		if logPath, err = logging.DefaultPath(); err != nil {
			return nil, fmt.Errorf("resolve log path: %w", err)
		}
	}
	logger, err := logging.New(logPath, cfg.Verbose)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	client := backend.New(cfg.BackendURL,
		backend.WithTimeout(cfg.Timeout),
		backend.WithUserAgent(userAgent()),
	)
	svc := verify.NewService(backend.WithLogging(client, logger), st.EventRepo(), logger)

	logger.Debug("startup",
		zap.String("version", displayVersion()),
		zap.String("backend", cfg.BackendURL),
		zap.String("db", dbPath),
	)

	return &env{cfg: cfg, logger: logger, store: st, svc: svc}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("close store", zap.Error(err))
	}
	_ = e.logger.Sync()
}

// handle returns the configured handle or handle.ErrMissingHandle.
func (e *env) handle() (handle.Handle, error) {
	h := handle.Normalize(e.cfg.Handle)
	if !h.Valid() {
		return "", fmt.Errorf("%w: pass --handle or set ASCENT_HANDLE", handle.ErrMissingHandle)
	}
	return h, nil
}

// loadConfig layers defaults, config file, .env, ASCENT_* variables and
// flags, in increasing priority.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := config.LoadDotEnv(".env"); err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}

	if v, _ := flags.GetString("backend"); v != "" {
		cfg.BackendURL = v
	}
	if v, _ := flags.GetString("handle"); v != "" {
		cfg.Handle = v
	}
	if v, _ := flags.GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := flags.GetString("log-file"); v != "" {
		cfg.LogFile = v
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path, creating its
// directory, or the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
