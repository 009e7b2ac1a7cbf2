package work

// CategoryInfo describes one configured category.
// Hidden categories still filter; they just get no selector button.
type CategoryInfo struct {
	Name   Category `json:"name" yaml:"name"`
	Label  string   `json:"label,omitempty" yaml:"label,omitempty"`
	Hidden bool     `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// Taxonomy is the ordered category enumeration supplied by configuration.
type Taxonomy []CategoryInfo

func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		{Name: "AI"},
		{Name: "Systems"},
		{Name: "Mobile"},
		{Name: "Data"},
		{Name: "MusicTech"},
	}
}

func (t Taxonomy) Contains(c Category) bool {
	for _, info := range t {
		if info.Name == c {
			return true
		}
	}
	return false
}

// Label returns the display name for c, or c itself when none is configured.
func (t Taxonomy) Label(c Category) string {
	for _, info := range t {
		if info.Name == c && info.Label != "" {
			return info.Label
		}
	}
	return string(c)
}

// Selectors returns All followed by every visible category in configured order.
func (t Taxonomy) Selectors() []Selector {
	out := []Selector{All}
	for _, info := range t {
		if !info.Hidden {
			out = append(out, Only(info.Name))
		}
	}
	return out
}

// Names returns every category name, hidden ones included.
func (t Taxonomy) Names() []Category {
	out := make([]Category, len(t))
	for i, info := range t {
		out[i] = info.Name
	}
	return out
}

// SelectorLabel returns the button text for a selector.
func (t Taxonomy) SelectorLabel(s Selector) string {
	c, ok := s.Category()
	if !ok {
		return AllToken
	}
	return t.Label(c)
}
