// Package work selects and orders portfolio entries for display.
package work

// Category is a value from the configured category taxonomy.
// The engine treats it as an opaque match key.
type Category string

// Item is a single portfolio entry as rendered by a card or carousel slot.
// Items are read-only once loaded.
type Item struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Featured bool     `json:"featured"`
	Order    float64  `json:"order"`

	Title    string   `json:"title"`
	Company  string   `json:"company,omitempty"`
	Role     string   `json:"role,omitempty"`
	Timeline string   `json:"timeline,omitempty"`
	Summary  string   `json:"summary,omitempty"`
	Outcomes []string `json:"outcomes,omitempty"`
	Stack    []string `json:"stack,omitempty"`
	Image    string   `json:"image,omitempty"`
	Link     string   `json:"link,omitempty"`
}

type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

type ChangeEvent struct {
	Op   Operation
	Item Item
}

// OnChangeListener receives notifications when items change after a reload.
//
// OnWorkChange is called outside the store's mutex and must not block.
type OnChangeListener interface {
	OnWorkChange(event ChangeEvent)
}
