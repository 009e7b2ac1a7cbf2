package content

import (
	"cmp"
	"slices"
	"time"
)

const (
	writingDir = "writing"

	// DateLayout renders dates like "Mar 4, 2025".
	DateLayout = "Jan 2, 2006"
)

// Writing is a blog post or article.
type Writing struct {
	Slug          string    `json:"slug"`
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	FormattedDate string    `json:"formattedDate"`
	Tags          []string  `json:"tags,omitempty"`
	Draft         bool      `json:"draft"`

	Body string `json:"-"`
	HTML string `json:"html,omitempty"`
}

func parseWriting(f *fields) Writing {
	w := Writing{
		Title:       f.String("title", true),
		Description: f.String("description", true),
		Date:        f.Time("date", true),
		Tags:        f.Strings("tags", false),
		Draft:       f.Bool("draft"),
	}
	w.FormattedDate = w.Date.UTC().Format(DateLayout)
	return w
}

// Published returns posts newest first, dropping drafts unless includeDrafts.
// The input is left untouched.
func Published(posts []Writing, includeDrafts bool) []Writing {
	out := make([]Writing, 0, len(posts))
	for _, p := range posts {
		if p.Draft && !includeDrafts {
			continue
		}
		out = append(out, p)
	}
	slices.SortStableFunc(out, func(a, b Writing) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Slug, b.Slug)
	})
	return out
}
