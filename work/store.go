package work

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Store serves the loaded portfolio items and reports changes after reloads.
type Store interface {
	List() []Item
	Get(id string) (Item, bool)

	// Reload re-reads the content and notifies listeners of any differences.
	Reload() error

	AddOnChangeListener(listener OnChangeListener)

	// StartWatching begins monitoring the content directory for edits.
	StartWatching() error
	StopWatching()
}

// LoadFunc produces the full item list in content order.
type LoadFunc func() ([]Item, error)

// ContentStore keeps items produced by a LoadFunc and reloads them when
// files under dir change.
type ContentStore struct {
	dir  string
	load LoadFunc

	itemsMu   sync.RWMutex
	items     []Item
	listeners []OnChangeListener

	// reloadMu serialises reloads so a slow load never overwrites a newer one.
	reloadMu sync.Mutex

	watcher    *fsnotify.Watcher
	debounce   *time.Timer
	debounceMu sync.Mutex
}

var _ Store = (*ContentStore)(nil)

// NewContentStore performs the initial load. A load error is returned as is;
// the content is expected to be valid at startup.
func NewContentStore(dir string, load LoadFunc) (*ContentStore, error) {
	s := &ContentStore{dir: dir, load: load}

	items, err := load()
	if err != nil {
		return nil, err
	}
	s.items = items

	return s, nil
}

// --- Read operations ---

func (s *ContentStore) List() []Item {
	s.itemsMu.RLock()
	defer s.itemsMu.RUnlock()

	result := make([]Item, len(s.items))
	copy(result, s.items)
	return result
}

func (s *ContentStore) Get(id string) (Item, bool) {
	s.itemsMu.RLock()
	defer s.itemsMu.RUnlock()

	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// --- Reload ---

func (s *ContentStore) Reload() error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}

	s.itemsMu.Lock()
	old := s.items
	s.items = items
	listeners := s.copyListeners()
	s.itemsMu.Unlock()

	for _, e := range diffItems(old, items) {
		notify(listeners, e)
	}
	return nil
}

func (s *ContentStore) AddOnChangeListener(listener OnChangeListener) {
	s.itemsMu.Lock()
	defer s.itemsMu.Unlock()
	s.listeners = append(s.listeners, listener)
}

func (s *ContentStore) copyListeners() []OnChangeListener {
	out := make([]OnChangeListener, len(s.listeners))
	copy(out, s.listeners)
	return out
}

func notify(listeners []OnChangeListener, event ChangeEvent) {
	for _, l := range listeners {
		l.OnWorkChange(event)
	}
}

// --- fsnotify: detect content edits ---

func (s *ContentStore) StartWatching() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// fsnotify is not recursive; every directory needs its own watch.
	err = filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return err
	}

	s.watcher = watcher
	go s.watchLoop()
	slog.Info("content store watching for changes", "dir", s.dir)
	return nil
}

func (s *ContentStore) StopWatching() {
	// Stop the debounce timer first so a pending reload cannot fire after Close.
	s.debounceMu.Lock()
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounceMu.Unlock()

	if s.watcher != nil {
		s.watcher.Close()
	}
}

func (s *ContentStore) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := s.watcher.Add(event.Name); err != nil {
						slog.Warn("failed to watch new content directory", "dir", event.Name, "error", err)
					}
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			s.scheduleReload()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("content store fsnotify error", "error", err)
		}
	}
}

const reloadDebounce = 100 * time.Millisecond

func (s *ContentStore) scheduleReload() {
	s.debounceMu.Lock()
	defer s.debounceMu.Unlock()

	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = time.AfterFunc(reloadDebounce, func() {
		if err := s.Reload(); err != nil {
			// Keep serving the last good content until the files are fixed.
			slog.Error("failed to reload content", "dir", s.dir, "error", err)
		}
	})
}

// diffItems reports deletes first, then creates and updates in new content order.
func diffItems(old, updated []Item) []ChangeEvent {
	var events []ChangeEvent

	newMap := make(map[string]Item, len(updated))
	for _, it := range updated {
		newMap[it.ID] = it
	}
	oldMap := make(map[string]Item, len(old))
	for _, it := range old {
		oldMap[it.ID] = it
	}

	for _, it := range old {
		if _, exists := newMap[it.ID]; !exists {
			events = append(events, ChangeEvent{Op: OperationDelete, Item: it})
		}
	}

	for _, it := range updated {
		prev, exists := oldMap[it.ID]
		if !exists {
			events = append(events, ChangeEvent{Op: OperationCreate, Item: it})
		} else if itemChanged(prev, it) {
			events = append(events, ChangeEvent{Op: OperationUpdate, Item: it})
		}
	}

	return events
}

func itemChanged(a, b Item) bool {
	return a.Category != b.Category ||
		a.Featured != b.Featured ||
		a.Order != b.Order ||
		a.Title != b.Title ||
		a.Company != b.Company ||
		a.Role != b.Role ||
		a.Timeline != b.Timeline ||
		a.Summary != b.Summary ||
		a.Image != b.Image ||
		a.Link != b.Link ||
		!slices.Equal(a.Outcomes, b.Outcomes) ||
		!slices.Equal(a.Stack, b.Stack)
}
