package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const (
	debounce  = 100 * time.Millisecond
	ignoreFor = time.Second
)

// ChangeKind says which loader should pick up a changed file.
type ChangeKind int

const (
	ConfigChange ChangeKind = iota
	ScriptChange
	DataChange
)

type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher reports edits to config, prefab, level and script files so a
// running game can reload them. Events and Errors close once the watcher
// stops.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
	log     *zap.Logger

	mu      sync.Mutex
	ignored map[string]time.Time
}

func NewWatcher(log *zap.Logger, dirs ...string) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		watcher: fw,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		log:     log,
		ignored: make(map[string]time.Time),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Ignore suppresses events for path for a short window. Callers use it
// before writing a watched file themselves.
func (w *Watcher) Ignore(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ignored[watchKey(path)] = time.Now().Add(ignoreFor)
}

func (w *Watcher) isIgnored(path string, now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	key := watchKey(path)
	until, ok := w.ignored[key]
	if !ok {
		return false
	}
	if now.After(until) {
		delete(w.ignored, key)
		return false
	}
	return true
}

func watchKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			kind, ok := Classify(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if w.isIgnored(event.Name, now) {
				w.log.Debug("ignored own write", zap.String("path", event.Name))
				continue
			}
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			w.log.Debug("file changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			select {
			case w.Events <- Change{Path: event.Name, Kind: kind}:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				w.log.Warn("dropped watcher error", zap.Error(err))
			}
		case <-w.closeCh:
			return
		}
	}
}

// Classify maps a path to the kind of reload it needs.
func Classify(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tengo":
		return ScriptChange, true
	case ".json":
		return DataChange, true
	case ".yaml", ".yml":
		if filepath.Base(filepath.Dir(path)) == "config" {
			return ConfigChange, true
		}
		return DataChange, true
	}
	return 0, false
}
