package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dshills/abbrev/internal/abbrev"
	"github.com/dshills/abbrev/internal/config"
	"github.com/dshills/abbrev/internal/config/watcher"
	"github.com/dshills/abbrev/internal/engine/buffer"
	"github.com/dshills/abbrev/internal/logging"
	"github.com/dshills/abbrev/internal/plugin/lua"
)

// App holds the process-wide pieces shared by every session: the loaded
// configuration, the logger, the abbreviation store and its watcher.
type App struct {
	cfg     *config.Config
	logger  *logging.Logger
	store   *abbrev.Store
	watcher *watcher.Watcher
	logFile io.Closer
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger instead of building one from the config.
func WithLogger(l *logging.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// New loads the abbreviation table, runs the registration script and
// starts the watcher as cfg asks. Script registrations are replayed on
// every reload of the file. Table and script problems are logged
// and never fatal; a broken log file or watcher setup is.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	a := &App{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		if err := a.initLogger(); err != nil {
			return nil, err
		}
	}

	loader := abbrev.NewLoader(abbrev.WithLogger(a.logger))
	a.store = abbrev.NewStore(loader.LoadFile(cfg.Abbrev.File))
	a.logger.Info("loaded %d abbreviations from %s", a.store.Table().Len(), cfg.Abbrev.File)

	var overlay *abbrev.Overlay
	if cfg.Abbrev.Script != "" {
		o, err := lua.RunScript(cfg.Abbrev.Script, a.store, lua.WithLogger(a.logger))
		if err != nil {
			a.logger.Warn("abbreviation script: %v", err)
		}
		overlay = o
	}

	if cfg.Abbrev.Watch {
		w, err := watcher.New(cfg.Abbrev.File, a.store,
			watcher.WithLogger(a.logger),
			watcher.WithOverlay(overlay),
		)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("watch %s: %w", cfg.Abbrev.File, err)
		}
		a.watcher = w
	}

	return a, nil
}

func (a *App) initLogger() error {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(a.cfg.Logging.Level)
	if a.cfg.Logging.File != "" {
		f, err := logging.OpenFile(a.cfg.Logging.File)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		lc.Output = f
		a.logFile = f
	}
	a.logger = logging.New(lc)
	return nil
}

// Config returns the configuration the app was built with.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Logger returns the app logger.
func (a *App) Logger() *logging.Logger {
	return a.logger
}

// Store returns the live abbreviation store.
func (a *App) Store() *abbrev.Store {
	return a.store
}

// NewSession creates a session over buf sharing the app's store.
func (a *App) NewSession(buf *buffer.Buffer, opts ...SessionOption) *Session {
	base := []SessionOption{
		WithStore(a.store),
		WithEnabled(a.cfg.Abbrev.Enabled),
		WithSessionLogger(a.logger),
	}
	return NewSession(buf, append(base, opts...)...)
}

// OpenSession opens path in a new session. A missing file starts empty.
func (a *App) OpenSession(path string) (*Session, error) {
	f, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return a.NewSession(buffer.NewBuffer(), WithPath(path)), nil
	case err != nil:
		return nil, NewOperationError("open", path, err)
	}
	defer f.Close()

	buf, err := buffer.NewBufferFromReader(f)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	return a.NewSession(buf, WithPath(path)), nil
}

// Close stops the watcher and closes the log file.
func (a *App) Close() error {
	var errs []error
	if a.watcher != nil {
		errs = append(errs, a.watcher.Close())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}
