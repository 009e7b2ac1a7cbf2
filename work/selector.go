package work

// AllToken is the wire form of the "no category filter" selector.
const AllToken = "All"

// Selector is the active category filter: either All or exactly one category.
// The zero value is All.
type Selector struct {
	category Category
	only     bool
}

// All selects every item regardless of category.
var All = Selector{}

// Only selects items whose category equals c.
func Only(c Category) Selector {
	return Selector{category: c, only: true}
}

// ParseSelector maps a wire token to a Selector. Only "All" selects
// everything; any other token, including the empty one, is a literal
// category, known or not. Callers default an absent parameter to All.
func ParseSelector(token string) Selector {
	if token == AllToken {
		return All
	}
	return Only(Category(token))
}

func (s Selector) IsAll() bool {
	return !s.only
}

// Category returns the selected category and false for All.
func (s Selector) Category() (Category, bool) {
	return s.category, s.only
}

func (s Selector) String() string {
	if !s.only {
		return AllToken
	}
	return string(s.category)
}

func (s Selector) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Selector) UnmarshalText(b []byte) error {
	*s = ParseSelector(string(b))
	return nil
}

func (s Selector) matches(it Item) bool {
	return !s.only || it.Category == s.category
}
