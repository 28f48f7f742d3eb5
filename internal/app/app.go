package app

import (
	"log/slog"
	"time"

	"docvault"
)

// App opens stores for one Config and logs what it does with them.
type App struct {
	Config Config
	Log    *slog.Logger
}

// New returns an App. A nil log discards output.
func New(cfg Config, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &App{Config: cfg, Log: log}
}

// Open validates the config and opens the store.
func (a *App) Open() (*docvault.Store, error) {
	if err := a.Config.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	s, err := docvault.Open(a.Config.Options())
	if err != nil {
		a.Log.Error("open failed", "source", a.Config.Source, "err", err)
		return nil, err
	}
	info := s.Info()
	a.Log.Debug("opened", "path", s.Path(), "format", info.Format, "took", time.Since(start))
	if info.Created {
		a.Log.Info("created empty store", "path", s.Path())
	}
	if info.Upgraded {
		a.Log.Info("encrypted plaintext store", "path", s.Path())
	}
	return s, nil
}

// Commit saves s.
func (a *App) Commit(s *docvault.Store) error {
	start := time.Now()
	if err := s.Save(); err != nil {
		a.Log.Error("save failed", "path", s.Path(), "err", err)
		return err
	}
	a.Log.Debug("saved", "path", s.Path(), "took", time.Since(start))
	return nil
}
