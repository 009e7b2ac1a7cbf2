package watch

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/LLwassim/LLwassim.github.io/work"
)

// View is the category selection and ordering a subscriber displays.
type View struct {
	Selector       work.Selector
	DisplayOrdered bool
}

func (v View) apply(items []work.Item) []work.Item {
	var opts []work.SortOption
	if v.DisplayOrdered {
		opts = append(opts, work.ByDisplayOrder())
	}
	return work.FilterAndSort(items, v.Selector, opts...)
}

// WorkListWatcher notifies subscribers when the work list changes. Each
// notification carries the change plus the subscriber's view recomputed
// through the engine, so clients never filter on their own.
type WorkListWatcher struct {
	*BaseWatcher
	store   work.Store
	eventCh chan work.ChangeEvent
	dirty   atomic.Bool // set when an event is dropped; triggers full sync

	viewsMu sync.RWMutex
	views   map[string]View
}

func NewWorkListWatcher(store work.Store) *WorkListWatcher {
	w := &WorkListWatcher{
		BaseWatcher: NewBaseWatcher("wl"),
		store:       store,
		eventCh:     make(chan work.ChangeEvent, 64),
		views:       make(map[string]View),
	}
	store.AddOnChangeListener(w)
	return w
}

func (w *WorkListWatcher) Start() error {
	go w.eventLoop()
	slog.Info("WorkListWatcher started")
	return nil
}

func (w *WorkListWatcher) Stop() {
	w.Cancel()
	slog.Info("WorkListWatcher stopped")
}

func (w *WorkListWatcher) eventLoop() {
	for {
		select {
		case <-w.Context().Done():
			return
		case event := <-w.eventCh:
			if w.dirty.Swap(false) {
				w.notifySync()
			} else {
				w.notifyChange(event)
			}
		}
	}
}

func (w *WorkListWatcher) view(id string) View {
	w.viewsMu.RLock()
	defer w.viewsMu.RUnlock()
	return w.views[id]
}

func (w *WorkListWatcher) notifyChange(event work.ChangeEvent) {
	if !w.HasSubscriptions() {
		return
	}

	all := w.store.List()
	w.NotifyAll("work.list.changed", func(sub *Subscription) any {
		params := workListChangedParams{
			ID:        sub.ID,
			Operation: string(event.Op),
			Items:     w.view(sub.ID).apply(all),
		}
		if event.Op == work.OperationDelete {
			params.ItemID = event.Item.ID
		} else {
			item := event.Item
			params.Item = &item
		}
		return params
	})

	slog.Debug("notified work list change", "operation", event.Op, "id", event.Item.ID)
}

// notifySync sends every subscriber its full view after dropped events.
func (w *WorkListWatcher) notifySync() {
	if !w.HasSubscriptions() {
		return
	}

	all := w.store.List()
	w.NotifyAll("work.list.changed", func(sub *Subscription) any {
		return workListChangedParams{
			ID:        sub.ID,
			Operation: "sync",
			Items:     w.view(sub.ID).apply(all),
		}
	})

	slog.Info("sent full work list sync to subscribers after event drop")
}

// Subscribe registers a subscriber and returns its current view.
func (w *WorkListWatcher) Subscribe(notifier Notifier, v View) (string, []work.Item) {
	id := w.GenerateID()

	w.viewsMu.Lock()
	w.views[id] = v
	w.viewsMu.Unlock()

	// Add the subscription before reading the list so no change is missed.
	w.AddSubscription(&Subscription{ID: id, Notifier: notifier})

	return id, v.apply(w.store.List())
}

// SetView changes the selection of an existing subscription.
func (w *WorkListWatcher) SetView(id string, v View) ([]work.Item, bool) {
	if w.GetSubscription(id) == nil {
		return nil, false
	}
	w.viewsMu.Lock()
	w.views[id] = v
	w.viewsMu.Unlock()
	return v.apply(w.store.List()), true
}

func (w *WorkListWatcher) Unsubscribe(id string) {
	w.RemoveSubscription(id)
	w.viewsMu.Lock()
	delete(w.views, id)
	w.viewsMu.Unlock()
}

// RemoveByNotifier drops the subscriptions and views of one connection.
func (w *WorkListWatcher) RemoveByNotifier(n Notifier) []string {
	ids := w.BaseWatcher.RemoveByNotifier(n)
	w.viewsMu.Lock()
	for _, id := range ids {
		delete(w.views, id)
	}
	w.viewsMu.Unlock()
	return ids
}

type workListChangedParams struct {
	ID        string      `json:"id"`
	Operation string      `json:"operation"`
	Item      *work.Item  `json:"item,omitempty"`
	ItemID    string      `json:"itemId,omitempty"`
	Items     []work.Item `json:"items"`
}

// OnWorkChange implements work.OnChangeListener. It must not block.
func (w *WorkListWatcher) OnWorkChange(event work.ChangeEvent) {
	select {
	case <-w.Context().Done():
		return
	case w.eventCh <- event:
	default:
		w.dirty.Store(true)
		slog.Warn("work list change event dropped, will sync on next event", "operation", event.Op)
	}
}
