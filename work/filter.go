package work

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// OrderDisplay is the wire name of the ByDisplayOrder option.
const OrderDisplay = "display"

var ErrUnknownOrder = errors.New("unknown sort order")

type sortConfig struct {
	byOrder bool
}

// SortOption adjusts the ordering applied within the featured and
// non-featured partitions.
type SortOption func(*sortConfig)

// ByDisplayOrder orders each partition by ascending Order. Items with equal
// Order keep their input order.
func ByDisplayOrder() SortOption {
	return func(c *sortConfig) { c.byOrder = true }
}

// ParseOrder maps a wire ordering name to sort options. The empty name means
// content order within each partition.
func ParseOrder(name string) ([]SortOption, error) {
	switch name {
	case "":
		return nil, nil
	case OrderDisplay:
		return []SortOption{ByDisplayOrder()}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOrder, name)
	}
}

// FilterAndSort returns the items selected by sel, featured items first.
//
// The input is never modified and the result is always a new, non-nil slice,
// so repeated calls with identical arguments never share a backing array.
// Within each partition the input order is kept unless ByDisplayOrder is given.
func FilterAndSort(items []Item, sel Selector, opts ...SortOption) []Item {
	var cfg sortConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var featured, rest []Item
	for _, it := range items {
		if !sel.matches(it) {
			continue
		}
		if it.Featured {
			featured = append(featured, it)
		} else {
			rest = append(rest, it)
		}
	}

	if cfg.byOrder {
		byOrder := func(a, b Item) int { return cmp.Compare(a.Order, b.Order) }
		slices.SortStableFunc(featured, byOrder)
		slices.SortStableFunc(rest, byOrder)
	}

	out := make([]Item, 0, len(featured)+len(rest))
	out = append(out, featured...)
	return append(out, rest...)
}
