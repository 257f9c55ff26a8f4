package modules

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher loads modules as soon as they are enabled
type Watcher struct {
	manager *Manager
	log     *logrus.Logger
}

// NewWatcher creates a watcher on the manager's enabled directory
func NewWatcher(manager *Manager, log *logrus.Logger) *Watcher {
	if log == nil {
		log = logrus.New()
	}
	return &Watcher{manager: manager, log: log}
}

// Run watches the enabled directory until ctx is done. New entries are
// loaded; removed entries stay loaded because descriptors live as long as
// the process.
func (w *Watcher) Run(ctx context.Context) error {
	dir := w.manager.EnabledDir()
	if dir == "" {
		return fmt.Errorf("no enabled modules directory configured")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create enabled modules directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.log.Infof("Watching %s for enabled modules", dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warnf("Module watcher error: %v", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if ValidateModuleName(name) != nil {
		return
	}

	switch {
	case event.Has(fsnotify.Create):
		if w.manager.HasLoaded(name) {
			return
		}
		err := w.manager.LoadModuleContext(ctx, name, event.Name)
		if err != nil && !errors.Is(err, ErrRegistrationFailed) && !errors.Is(err, ErrModuleAlreadyLoaded) {
			w.log.Warnf("Failed to load module %s: %v", name, err)
		}
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if w.manager.HasLoaded(name) {
			w.log.Infof("Module %s was disabled and stays loaded until restart", name)
		}
	}
}
