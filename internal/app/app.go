package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/five82/scrivener/internal/config"
	"github.com/five82/scrivener/internal/credential"
	"github.com/five82/scrivener/internal/guard"
	"github.com/five82/scrivener/internal/logging"
	"github.com/five82/scrivener/internal/prefs"
	"github.com/five82/scrivener/internal/state"
	"github.com/five82/scrivener/internal/summaries"
	"github.com/five82/scrivener/internal/ui"
)

// Options configure how scrivener boots.
type Options struct {
	ConfigPath string
	PrefsPath  string    // empty uses default ~/.config/scrivener/prefs.toml
	Verbose    bool      // force debug logging
	LogOutput  io.Writer // nil writes to the log file beside the credential DB
	StartPath  string    // initial TUI route, e.g. "/?token=..." or "/summary/42"
}

// Services is everything a command needs: the resolved config, a logger and
// the credential-backed client.
type Services struct {
	Config config.Config
	Prefs  prefs.Prefs
	Logger *slog.Logger
	Tokens *credential.Store
	Client *summaries.Client
	Guard  *guard.Guard

	closers []func() error
}

// Open loads configuration and wires the credential store, client and guard.
// Callers must Close the result.
func Open(opts Options) (*Services, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	svc := &Services{Config: cfg, Prefs: userPrefs}

	logOut := opts.LogOutput
	if logOut == nil {
		file, err := openLogFile(cfg.LogPath())
		if err != nil {
			return nil, err
		}
		svc.closers = append(svc.closers, file.Close)
		logOut = file
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("configure logging: %w", err)
	}
	if opts.Verbose {
		level = slog.LevelDebug
	}
	svc.Logger = logging.New(logOut, level, cfg.LogFormat)

	storage, err := credential.OpenBolt(cfg.CredentialPath)
	if err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	svc.closers = append(svc.closers, storage.Close)

	svc.Tokens = credential.NewStore(storage, credential.NoLocation, svc.Logger)
	svc.Client, err = summaries.NewClient(cfg.APIBase, svc.Tokens, summaries.WithLogger(svc.Logger))
	if err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("init summaries client: %w", err)
	}
	svc.Guard = guard.New(svc.Tokens)

	svc.Logger.Debug("services ready",
		slog.String("api_base", svc.Client.BaseURL()),
		slog.String("credential_path", cfg.CredentialPath),
	)
	return svc, nil
}

// Close releases the credential database and log file.
func (s *Services) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Run boots the scrivener TUI until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	svc, err := Open(opts)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	store := &state.Store{}

	poller := Poller{
		Store:    store,
		Lister:   svc.Client,
		Tokens:   svc.Tokens,
		Interval: svc.Config.PollInterval,
		Logger:   svc.Logger,
	}
	poller.Start(ctx)

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    svc.Client,
		Tokens:    svc.Tokens,
		Guard:     svc.Guard,
		Store:     store,
		Logger:    svc.Logger,
		PollTick:  svc.Config.PollInterval,
		ThemeName: svc.Prefs.Theme,
		PrefsPath: opts.PrefsPath,
		StartPath: opts.StartPath,
	}
	return ui.Run(uiOpts)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}
