// Package rpc defines JSON-RPC 2.0 wire format types for WebSocket communication.
// These types represent the params and result structures for all RPC methods.
package rpc

import (
	"github.com/LLwassim/LLwassim.github.io/contact"
	"github.com/LLwassim/LLwassim.github.io/content"
	"github.com/LLwassim/LLwassim.github.io/site"
	"github.com/LLwassim/LLwassim.github.io/work"
)

// Client → Server

// Work namespace

// WorkFilterParams selects a category; a missing or empty category is "All".
type WorkFilterParams struct {
	Category work.Selector `json:"category"`
	Order    string        `json:"order,omitempty"` // "" or "display"
}

type WorkFilterResult struct {
	Category work.Selector `json:"category"`
	Items    []work.Item   `json:"items"`
}

type WorkGetParams struct {
	ID string `json:"id"`
}

type CategoryButton struct {
	Token string `json:"token"`
	Label string `json:"label"`
}

type WorkCategoriesResult struct {
	Categories []CategoryButton `json:"categories"`
}

type WorkListSubscribeParams = WorkFilterParams

type WorkListSubscribeResult struct {
	ID    string      `json:"id"`
	Items []work.Item `json:"items"`
}

// WorkListSelectParams changes the view of an existing work list subscription.
type WorkListSelectParams struct {
	ID       string        `json:"id"`
	Category work.Selector `json:"category"`
	Order    string        `json:"order,omitempty"`
}

type WorkListSelectResult struct {
	Items []work.Item `json:"items"`
}

// Site namespace

type SiteSubscribeResult struct {
	ID   string      `json:"id"`
	Site site.Config `json:"site"`
}

// Writing namespace

type WritingListParams struct {
	Drafts bool `json:"drafts,omitempty"`
}

type WritingListResult struct {
	Posts []content.Writing `json:"posts"`
}

type ExperienceListResult struct {
	Experience []site.Experience `json:"experience"`
}

// Contact namespace

type ContactSubmitParams = contact.Submission

type ContactSubmitResult = contact.Receipt

// Subscriptions

type UnsubscribeParams struct {
	ID string `json:"id"`
}
