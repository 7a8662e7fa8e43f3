package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const eventBufferSize = 16

// Watcher monitors one machine definition file and emits the re-validated
// definition after every change. Definitions that fail to parse or validate
// are logged and dropped; subscribers only ever see usable configs.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	events  chan *MachineConfig
	stopCh  chan struct{}
	logger  *zap.SugaredLogger
}

// NewWatcher creates a watcher for the definition at path. A nil logger
// disables logging.
func NewWatcher(path string, logger *zap.SugaredLogger) *Watcher {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Watcher{
		path:   path,
		events: make(chan *MachineConfig, eventBufferSize),
		stopCh: make(chan struct{}),
		logger: logger,
	}
}

// Start loads the definition once, emits it as the first event, and begins
// watching for changes. A missing or invalid file fails Start, so a broken
// deployment is caught before any reload logic runs.
func (w *Watcher) Start() error {
	cfg, err := LoadFile(w.path)
	if err != nil {
		return err
	}

	w.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: create watcher: %w", err)
	}
	if err := w.watcher.Add(w.path); err != nil {
		_ = w.watcher.Close()
		return fmt.Errorf("config: watch %s: %w", w.path, err)
	}

	w.emit(cfg)
	go w.loop()

	return nil
}

// Stop ends watching. The events channel stays open but quiet afterwards.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	if w.watcher != nil {
		if err := w.watcher.Close(); err != nil {
			return fmt.Errorf("config: close watcher: %w", err)
		}
	}
	return nil
}

// Events returns the stream of validated definitions. The first event is
// the initial load; each later one is a successful reload.
func (w *Watcher) Events() <-chan *MachineConfig {
	return w.events
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("config watcher error", "path", w.path, "error", err)
		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFile(w.path)
	if err != nil {
		w.logger.Warnw("config reload rejected, keeping previous definition",
			"path", w.path, "error", err)
		return
	}
	w.logger.Infow("config reloaded",
		"path", w.path, "machine", cfg.ID, "states", len(cfg.States))
	w.emit(cfg)
}

func (w *Watcher) emit(cfg *MachineConfig) {
	select {
	case w.events <- cfg:
	case <-w.stopCh:
	}
}
