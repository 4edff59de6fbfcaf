package bot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ppiankov/tjporte/internal/config"
	"github.com/ppiankov/tjporte/internal/roles"
)

const reloadDebounce = 500 * time.Millisecond

// RoleSetter receives a new role table after the config file changes.
type RoleSetter interface {
	SetRoles(roles.Table)
}

// Reloader watches the config file and hot-reloads the role table.
// Other settings need a restart.
type Reloader struct {
	watcher *fsnotify.Watcher
	target  RoleSetter
	path    string
	logger  *slog.Logger
}

// NewReloader creates a watcher on the directory holding path, so saves
// that replace the file by rename are still seen.
func NewReloader(target RoleSetter, path string, logger *slog.Logger) (*Reloader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	path = filepath.Clean(path)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot watch %q: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", filepath.Dir(path), err)
	}

	return &Reloader{
		watcher: watcher,
		target:  target,
		path:    path,
		logger:  logger,
	}, nil
}

// Reload reads the config file and applies its role table. An invalid file
// leaves the current table in place.
func (r *Reloader) Reload() error {
	cfg, err := config.Load(r.path)
	if err != nil {
		return err
	}
	r.target.SetRoles(cfg.Roles)
	return nil
}

// relevant reports whether event may have changed the config file.
func (r *Reloader) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != r.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// Run watches for file changes and reloads roles. Blocks until ctx is cancelled.
func (r *Reloader) Run(ctx context.Context) error {
	defer r.watcher.Close()

	// Debounce: wait after the last write before reloading
	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if r.relevant(event) {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(reloadDebounce, func() {
					if err := r.Reload(); err != nil {
						r.logger.Error("hot-reload failed", "path", r.path, "error", err)
					} else {
						r.logger.Info("hot-reload: roles reloaded", "path", r.path)
					}
				})
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("file watcher error", "error", err)
		}
	}
}
