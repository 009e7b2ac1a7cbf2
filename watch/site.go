package watch

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/LLwassim/LLwassim.github.io/site"
)

// SiteWatcher notifies subscribers when the site config is updated. Events
// go through a channel so the store is never held up by network writes.
type SiteWatcher struct {
	*BaseWatcher
	store      *site.Store
	eventCh    chan site.Config
	dirty      atomic.Bool // set when an event is dropped; next event sends the latest config
	onChangeMu sync.RWMutex
	onChange   func(site.Config)
}

func NewSiteWatcher(store *site.Store) *SiteWatcher {
	w := &SiteWatcher{
		BaseWatcher: NewBaseWatcher("st"),
		store:       store,
		eventCh:     make(chan site.Config, 16),
	}
	store.SetOnChangeListener(w)
	return w
}

func (w *SiteWatcher) Start() error {
	go w.eventLoop()
	slog.Info("SiteWatcher started")
	return nil
}

func (w *SiteWatcher) Stop() {
	w.Cancel()
	slog.Info("SiteWatcher stopped")
}

func (w *SiteWatcher) eventLoop() {
	for {
		select {
		case <-w.Context().Done():
			return
		case cfg := <-w.eventCh:
			if w.dirty.Swap(false) {
				cfg = w.store.Get()
			}
			w.notifyChange(cfg)
		}
	}
}

// SetOnChange sets a callback run before subscribers are notified. The
// server uses it to reload content when the taxonomy changes.
func (w *SiteWatcher) SetOnChange(fn func(site.Config)) {
	w.onChangeMu.Lock()
	defer w.onChangeMu.Unlock()
	w.onChange = fn
}

func (w *SiteWatcher) notifyChange(cfg site.Config) {
	w.onChangeMu.RLock()
	onChange := w.onChange
	w.onChangeMu.RUnlock()
	if onChange != nil {
		onChange(cfg)
	}

	if !w.HasSubscriptions() {
		return
	}

	w.NotifyAll("site.changed", func(sub *Subscription) any {
		return siteChangedParams{ID: sub.ID, Site: cfg}
	})

	slog.Debug("notified site change")
}

// Subscribe registers a subscriber and returns the current config.
func (w *SiteWatcher) Subscribe(notifier Notifier) (string, site.Config) {
	id := w.GenerateID()
	w.AddSubscription(&Subscription{ID: id, Notifier: notifier})
	return id, w.store.Get()
}

type siteChangedParams struct {
	ID   string      `json:"id"`
	Site site.Config `json:"site"`
}

// OnSiteChange implements site.OnChangeListener. It must not block.
func (w *SiteWatcher) OnSiteChange(cfg site.Config) {
	if w.Context().Err() != nil {
		return
	}

	select {
	case w.eventCh <- cfg:
	default:
		w.dirty.Store(true)
		slog.Warn("site change event dropped, will send latest config on next event")
	}
}
