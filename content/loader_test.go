package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LLwassim/LLwassim.github.io/work"
)

const caseStudyTemplate = `---
title: %TITLE%
company: Lennar
role:
  - Principal Software Engineer
  - Architect
timeline: Feb 2025 - Present
stack: [Next.js, AWS, Snowflake]
summary: Led architecture of the pricing platform.
outcomes:
  - Revenue uplift
context: Pricing decisions took days.
decisions:
  - Move pricing to a model-driven service
whatIdDoNext:
  - Add experimentation
featured: %FEATURED%
order: %ORDER%
category: %CATEGORY%
image: /images/logo.png
links:
  demo: https://example.com
---

## Overview

Some **bold** text.

<Callout type="info">Hidden JSX</Callout>
<script>alert(1)</script>
`

func caseStudySource(title, category, featured, order string) string {
	r := strings.NewReplacer(
		"%TITLE%", title,
		"%CATEGORY%", category,
		"%FEATURED%", featured,
		"%ORDER%", order,
	)
	return r.Replace(caseStudyTemplate)
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestLoader(dir string) *Loader {
	return NewLoader(dir, work.DefaultTaxonomy)
}

func TestLoader_LoadCaseStudies(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "case-studies", "lennar-ai-pricing.mdx"), caseStudySource("AI Pricing", "AI", "true", "2"))
	writeFile(t, filepath.Join(dir, "case-studies", "based-music", "index.mdx"), caseStudySource("Based Music", "MusicTech", "true", "1"))
	writeFile(t, filepath.Join(dir, "case-studies", "notes.txt"), "ignored")

	studies, err := newTestLoader(dir).LoadCaseStudies()
	if err != nil {
		t.Fatalf("LoadCaseStudies: %v", err)
	}
	if len(studies) != 2 {
		t.Fatalf("got %d studies, want 2", len(studies))
	}

	// Lexical path order: based-music/index.mdx < lennar-ai-pricing.mdx
	bm, ai := studies[0], studies[1]
	if bm.Slug != "based-music" || bm.URL != "/work/based-music" {
		t.Errorf("slug/url = %q %q", bm.Slug, bm.URL)
	}
	if ai.Slug != "lennar-ai-pricing" {
		t.Errorf("slug = %q", ai.Slug)
	}
	if ai.Category != "AI" || !ai.Featured || ai.Order != 2 {
		t.Errorf("unexpected fields %+v", ai)
	}
	if len(ai.Role) != 2 || ai.Links["demo"] != "https://example.com" {
		t.Errorf("role/links = %v %v", ai.Role, ai.Links)
	}
	if !strings.Contains(ai.HTML, "<strong>bold</strong>") {
		t.Errorf("expected rendered markdown, got %q", ai.HTML)
	}
	if strings.Contains(ai.HTML, "<script") || strings.Contains(ai.HTML, "<Callout") {
		t.Errorf("expected sanitized html, got %q", ai.HTML)
	}
	if !strings.Contains(ai.Body, "## Overview") {
		t.Errorf("expected raw body to be kept")
	}

	item := ai.WorkItem()
	if item.ID != "lennar-ai-pricing" || item.Link != "/work/lennar-ai-pricing" {
		t.Errorf("work item = %+v", item)
	}
	if item.Role != "Principal Software Engineer / Architect" {
		t.Errorf("role = %q", item.Role)
	}
}

func TestLoader_UnknownCategory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "case-studies", "x.mdx"), caseStudySource("X", "Platform", "false", "0"))

	_, err := newTestLoader(dir).LoadCaseStudies()
	if !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("err = %v, want ErrInvalidDocument", err)
	}
	if !strings.Contains(err.Error(), "x.mdx") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestLoader_TaxonomyFromConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "case-studies", "x.mdx"), caseStudySource("X", "Platform", "false", "0"))

	loader := NewLoader(dir, func() work.Taxonomy {
		return work.Taxonomy{{Name: "Platform"}}
	})
	studies, err := loader.LoadCaseStudies()
	if err != nil {
		t.Fatalf("LoadCaseStudies: %v", err)
	}
	if studies[0].Category != "Platform" {
		t.Errorf("category = %q", studies[0].Category)
	}
}

func TestLoader_MissingRequiredField(t *testing.T) {
	dir := t.TempDir()
	src := strings.Replace(caseStudySource("X", "AI", "false", "0"), "image: /images/logo.png\n", "", 1)
	writeFile(t, filepath.Join(dir, "case-studies", "x.mdx"), src)

	_, err := newTestLoader(dir).LoadCaseStudies()
	if !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("err = %v, want ErrInvalidDocument", err)
	}
	if !strings.Contains(err.Error(), `"image"`) {
		t.Errorf("error should name the field: %v", err)
	}
}

func TestLoader_NoFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "writing", "post.mdx"), "# No front matter\n")

	_, err := newTestLoader(dir).LoadWriting()
	if !errors.Is(err, ErrNoFrontMatter) {
		t.Fatalf("err = %v, want ErrNoFrontMatter", err)
	}
}

func TestLoader_MissingDirectories(t *testing.T) {
	loader := newTestLoader(t.TempDir())

	studies, err := loader.LoadCaseStudies()
	if err != nil || len(studies) != 0 {
		t.Errorf("LoadCaseStudies = %v, %v; want empty, nil", studies, err)
	}
	posts, err := loader.LoadWriting()
	if err != nil || len(posts) != 0 {
		t.Errorf("LoadWriting = %v, %v; want empty, nil", posts, err)
	}
}

func TestLoader_LoadWriting(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "writing", "first.mdx"), `---
title: First
description: The first post
date: 2024-01-15
tags: [go]
---
Hello`)

	posts, err := newTestLoader(dir).LoadWriting()
	if err != nil {
		t.Fatalf("LoadWriting: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("got %d posts", len(posts))
	}
	p := posts[0]
	if p.Slug != "first" || p.URL != "/writing/first" {
		t.Errorf("slug/url = %q %q", p.Slug, p.URL)
	}
	if p.FormattedDate != "Jan 15, 2024" {
		t.Errorf("formatted date = %q", p.FormattedDate)
	}
	if p.Draft {
		t.Error("draft should default to false")
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"foo.mdx", "foo"},
		{filepath.Join("nested", "bar.mdx"), "nested/bar"},
		{filepath.Join("dir", "index.mdx"), "dir"},
		{"index.mdx", ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.rel); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}

func TestLibrary_ReloadAndLookup(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "case-studies", "a.mdx"), caseStudySource("A", "Systems", "false", "0"))
	writeFile(t, filepath.Join(dir, "case-studies", "b.mdx"), caseStudySource("B", "AI", "true", "0"))

	lib := NewLibrary(newTestLoader(dir))
	items, err := lib.LoadWorkItems()
	if err != nil {
		t.Fatalf("LoadWorkItems: %v", err)
	}
	if len(items) != 2 || items[0].ID != "a" || items[1].ID != "b" {
		t.Fatalf("items = %+v", items)
	}

	cs, ok := lib.CaseStudy("b")
	if !ok || cs.Title != "B" {
		t.Errorf("CaseStudy(b) = %+v, %v", cs, ok)
	}
	if _, ok := lib.CaseStudy("missing"); ok {
		t.Error("expected missing case study")
	}

	// A broken file keeps the previous documents.
	writeFile(t, filepath.Join(dir, "case-studies", "c.mdx"), "broken")
	if err := lib.Reload(); err == nil {
		t.Fatal("expected reload error")
	}
	if got := len(lib.CaseStudies()); got != 2 {
		t.Errorf("CaseStudies len = %d after failed reload, want 2", got)
	}
}
