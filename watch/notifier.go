package watch

import "context"

// Notification is a server-initiated message for one subscriber.
type Notification struct {
	Method string
	Params any
}

// Notifier delivers notifications to a subscriber. WebSocket connections
// provide a JSON-RPC implementation.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Watcher is the part of every watcher a connection needs for cleanup.
type Watcher interface {
	Unsubscribe(id string)
	RemoveByNotifier(n Notifier) []string
}
