package content

import (
	"fmt"
	"strings"

	"github.com/LLwassim/LLwassim.github.io/work"
)

const caseStudiesDir = "case-studies"

// CaseStudy is a long-form write-up of one piece of work.
type CaseStudy struct {
	Slug string `json:"slug"`
	URL  string `json:"url"`

	Title        string            `json:"title"`
	Company      string            `json:"company,omitempty"`
	Role         []string          `json:"role"`
	Timeline     string            `json:"timeline"`
	Stack        []string          `json:"stack"`
	Summary      string            `json:"summary"`
	Outcomes     []string          `json:"outcomes"`
	Context      string            `json:"context"`
	Decisions    []string          `json:"decisions"`
	Artifacts    []map[string]any  `json:"artifacts,omitempty"`
	Links        map[string]string `json:"links,omitempty"`
	WhatIdDoNext []string          `json:"whatIdDoNext"`
	Featured     bool              `json:"featured"`
	Order        float64           `json:"order"`
	Category     work.Category     `json:"category"`
	Image        string            `json:"image"`

	Body string `json:"-"`
	HTML string `json:"html,omitempty"`
}

func parseCaseStudy(f *fields, tax work.Taxonomy) CaseStudy {
	cs := CaseStudy{
		Title:        f.String("title", true),
		Company:      f.String("company", false),
		Role:         f.Strings("role", true),
		Timeline:     f.String("timeline", true),
		Stack:        f.Strings("stack", true),
		Summary:      f.String("summary", true),
		Outcomes:     f.Strings("outcomes", true),
		Context:      f.String("context", true),
		Decisions:    f.Strings("decisions", true),
		Artifacts:    f.Objects("artifacts"),
		Links:        f.StringMap("links"),
		WhatIdDoNext: f.Strings("whatIdDoNext", true),
		Featured:     f.Bool("featured"),
		Order:        f.Number("order"),
		Category:     work.Category(f.String("category", true)),
		Image:        f.String("image", true),
	}

	if f.err == nil && !tax.Contains(cs.Category) {
		f.err = fmt.Errorf("%w: category %q is not one of %v", ErrInvalidDocument, cs.Category, tax.Names())
	}
	return cs
}

// WorkItem projects the case study onto the card shown in work listings.
func (cs CaseStudy) WorkItem() work.Item {
	return work.Item{
		ID:       cs.Slug,
		Category: cs.Category,
		Featured: cs.Featured,
		Order:    cs.Order,
		Title:    cs.Title,
		Company:  cs.Company,
		Role:     strings.Join(cs.Role, " / "),
		Timeline: cs.Timeline,
		Summary:  cs.Summary,
		Outcomes: cs.Outcomes,
		Stack:    cs.Stack,
		Image:    cs.Image,
		Link:     cs.URL,
	}
}

// WorkItems converts case studies in order.
func WorkItems(studies []CaseStudy) []work.Item {
	out := make([]work.Item, len(studies))
	for i, cs := range studies {
		out[i] = cs.WorkItem()
	}
	return out
}
