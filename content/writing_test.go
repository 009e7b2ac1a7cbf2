package content

import (
	"strings"
	"testing"
	"time"
)

func TestPublished(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	posts := []Writing{
		{Slug: "old", Date: day(1)},
		{Slug: "draft", Date: day(20), Draft: true},
		{Slug: "new-b", Date: day(10)},
		{Slug: "new-a", Date: day(10)},
	}

	got := Published(posts, false)
	want := []string{"new-a", "new-b", "old"}
	if len(got) != len(want) {
		t.Fatalf("got %d posts, want %d", len(got), len(want))
	}
	for i, slug := range want {
		if got[i].Slug != slug {
			t.Errorf("post %d = %s, want %s", i, got[i].Slug, slug)
		}
	}

	withDrafts := Published(posts, true)
	if len(withDrafts) != 4 || withDrafts[0].Slug != "draft" {
		t.Errorf("with drafts = %+v", withDrafts)
	}

	if posts[0].Slug != "old" {
		t.Error("input must not be reordered")
	}
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render([]byte("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n<img src=x onerror=alert(1)>"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if want := `<h1 id="title">Title</h1>`; !strings.Contains(html, want) {
		t.Errorf("missing heading %q in %q", want, html)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("expected GFM table in %q", html)
	}
	if strings.Contains(html, "onerror") {
		t.Errorf("expected event handler to be stripped: %q", html)
	}
}
