package site

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

const fileName = "site.yaml"

type OnChangeListener interface {
	OnSiteChange(cfg Config)
}

type Store struct {
	path string

	dataMu   sync.RWMutex
	data     Config
	listener OnChangeListener

	watcher    *fsnotify.Watcher
	debounce   *time.Timer
	debounceMu sync.Mutex
}

// NewStore loads dataDir/site.yaml. A missing, corrupt or invalid file leaves
// the defaults in place.
func NewStore(dataDir string) (*Store, error) {
	s := &Store{
		path: filepath.Join(dataDir, fileName),
		data: Default(),
	}

	cfg, err := s.read()
	switch {
	case errors.Is(err, os.ErrNotExist):
	case errors.Is(err, ErrInvalidConfig):
		slog.Warn("site config invalid, using defaults", "path", s.path, "error", err)
	case err != nil:
		return nil, err
	default:
		s.data = cfg
	}

	return s, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Get() Config {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return s.data
}

func (s *Store) SetOnChangeListener(l OnChangeListener) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	s.listener = l
}

func (s *Store) Update(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.dataMu.Lock()
	if err := s.save(cfg); err != nil {
		s.dataMu.Unlock()
		return err
	}
	s.data = cfg
	listener := s.listener
	s.dataMu.Unlock()

	if listener != nil {
		listener.OnSiteChange(cfg)
	}
	return nil
}

// Reload re-reads the file. On error the current config is kept. Listeners
// are only notified when the config actually changed.
func (s *Store) Reload() error {
	cfg, err := s.read()
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return err
	}

	s.dataMu.Lock()
	changed := !reflect.DeepEqual(s.data, cfg)
	s.data = cfg
	listener := s.listener
	s.dataMu.Unlock()

	if changed && listener != nil {
		listener.OnSiteChange(cfg)
	}
	return nil
}

func (s *Store) read() (Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (s *Store) save(cfg Config) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "site-*.yaml.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, s.path)
}

// StartWatching watches the data directory rather than the file, so the
// atomic rename in save and editors that replace the file are both seen.
func (s *Store) StartWatching() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	s.watcher = watcher
	go s.watchLoop()
	return nil
}

func (s *Store) StopWatching() {
	s.debounceMu.Lock()
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounceMu.Unlock()

	if s.watcher != nil {
		s.watcher.Close()
	}
}

func (s *Store) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != fileName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			s.scheduleReload()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("site config fsnotify error", "error", err)
		}
	}
}

const reloadDebounce = 100 * time.Millisecond

func (s *Store) scheduleReload() {
	s.debounceMu.Lock()
	defer s.debounceMu.Unlock()

	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = time.AfterFunc(reloadDebounce, func() {
		if err := s.Reload(); err != nil {
			slog.Warn("failed to reload site config, keeping previous", "path", s.path, "error", err)
		}
	})
}
