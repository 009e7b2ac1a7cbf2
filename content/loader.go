package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/LLwassim/LLwassim.github.io/work"
)

const docExt = ".mdx"

// Loader reads documents from a content directory laid out as
// <dir>/case-studies/**/*.mdx and <dir>/writing/**/*.mdx.
type Loader struct {
	dir      string
	renderer *Renderer
	taxonomy func() work.Taxonomy
}

// NewLoader creates a loader. taxonomy is consulted on every load so category
// changes in the site config apply on the next reload.
func NewLoader(dir string, taxonomy func() work.Taxonomy) *Loader {
	return &Loader{
		dir:      dir,
		renderer: NewRenderer(),
		taxonomy: taxonomy,
	}
}

func (l *Loader) LoadCaseStudies() ([]CaseStudy, error) {
	tax := l.taxonomy()
	var out []CaseStudy
	err := l.walk(caseStudiesDir, func(slug string, f *fields, body []byte) error {
		cs := parseCaseStudy(f, tax)
		if f.err != nil {
			return f.err
		}
		html, err := l.renderer.Render(body)
		if err != nil {
			return err
		}
		cs.Slug = slug
		cs.URL = "/work/" + slug
		cs.Body = string(body)
		cs.HTML = html
		out = append(out, cs)
		return nil
	})
	return out, err
}

func (l *Loader) LoadWriting() ([]Writing, error) {
	var out []Writing
	err := l.walk(writingDir, func(slug string, f *fields, body []byte) error {
		w := parseWriting(f)
		if f.err != nil {
			return f.err
		}
		html, err := l.renderer.Render(body)
		if err != nil {
			return err
		}
		w.Slug = slug
		w.URL = "/writing/" + slug
		w.Body = string(body)
		w.HTML = html
		out = append(out, w)
		return nil
	})
	return out, err
}

type docFunc func(slug string, f *fields, body []byte) error

// walk visits every document under sub in lexical path order and stops at the
// first invalid one. A missing sub directory has no documents.
func (l *Loader) walk(sub string, fn docFunc) error {
	root := filepath.Join(l.dir, sub)

	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), docExt) {
			paths = append(paths, p)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	sort.Strings(paths)

	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		src, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		meta, body, err := splitFrontMatter(src)
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Join(sub, rel), err)
		}
		f, err := parseFields(meta)
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Join(sub, rel), err)
		}
		if err := fn(Slug(rel), f, body); err != nil {
			return fmt.Errorf("%s: %w", filepath.Join(sub, rel), err)
		}
	}
	return nil
}

// Slug derives the URL slug from a path relative to its collection directory:
// the extension is dropped, separators become "/", and a trailing "index"
// segment collapses into its directory.
func Slug(rel string) string {
	s := filepath.ToSlash(rel)
	s = strings.TrimSuffix(s, path.Ext(s))
	if s == "index" {
		return ""
	}
	return strings.TrimSuffix(s, "/index")
}
