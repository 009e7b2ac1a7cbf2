// Package content loads case studies and writing posts from MDX files with
// YAML front matter.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoFrontMatter   = errors.New("missing front matter")
	ErrInvalidDocument = errors.New("invalid document")
)

var delimiter = []byte("---")

// splitFrontMatter separates the leading "---" block from the body.
func splitFrontMatter(src []byte) (meta, body []byte, err error) {
	src = bytes.TrimPrefix(src, []byte("\ufeff"))

	first, rest, _ := cutLine(src)
	if !bytes.Equal(bytes.TrimSpace(first), delimiter) {
		return nil, nil, ErrNoFrontMatter
	}

	var metaBuf bytes.Buffer
	for len(rest) > 0 {
		var line []byte
		line, rest, _ = cutLine(rest)
		if bytes.Equal(bytes.TrimSpace(line), delimiter) {
			return metaBuf.Bytes(), bytes.TrimLeft(rest, "\r\n"), nil
		}
		metaBuf.Write(line)
		metaBuf.WriteByte('\n')
	}
	return nil, nil, fmt.Errorf("%w: unterminated block", ErrNoFrontMatter)
}

func cutLine(b []byte) (line, rest []byte, found bool) {
	line, rest, found = bytes.Cut(b, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, found
}

// fields wraps decoded front matter with lenient typed accessors.
// The first failure is kept in err so callers can check once at the end.
type fields struct {
	m   map[string]any
	err error
}

func parseFields(meta []byte) (*fields, error) {
	m := map[string]any{}
	if err := yaml.Unmarshal(meta, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &fields{m: m}, nil
}

func (f *fields) fail(key, reason string) {
	if f.err == nil {
		f.err = fmt.Errorf("%w: field %q %s", ErrInvalidDocument, key, reason)
	}
}

func (f *fields) lookup(key string, required bool) (any, bool) {
	v, ok := f.m[key]
	if !ok || v == nil {
		if required {
			f.fail(key, "is required")
		}
		return nil, false
	}
	return v, true
}

func (f *fields) String(key string, required bool) string {
	v, ok := f.lookup(key, required)
	if !ok {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		f.fail(key, "must be a string")
		return ""
	}
	if required && s == "" {
		f.fail(key, "is required")
	}
	return s
}

func (f *fields) Strings(key string, required bool) []string {
	v, ok := f.lookup(key, required)
	if !ok {
		return nil
	}
	s, err := cast.ToStringSliceE(v)
	if err != nil {
		f.fail(key, "must be a list of strings")
		return nil
	}
	return s
}

func (f *fields) Bool(key string) bool {
	v, ok := f.lookup(key, false)
	if !ok {
		return false
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		f.fail(key, "must be a boolean")
	}
	return b
}

func (f *fields) Number(key string) float64 {
	v, ok := f.lookup(key, false)
	if !ok {
		return 0
	}
	n, err := cast.ToFloat64E(v)
	if err != nil {
		f.fail(key, "must be a number")
	}
	return n
}

func (f *fields) Time(key string, required bool) time.Time {
	v, ok := f.lookup(key, required)
	if !ok {
		return time.Time{}
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		f.fail(key, "must be a date")
	}
	return t
}

func (f *fields) StringMap(key string) map[string]string {
	v, ok := f.lookup(key, false)
	if !ok {
		return nil
	}
	m, err := cast.ToStringMapStringE(v)
	if err != nil {
		f.fail(key, "must be a map of strings")
		return nil
	}
	return m
}

func (f *fields) Objects(key string) []map[string]any {
	v, ok := f.lookup(key, false)
	if !ok {
		return nil
	}
	list, err := cast.ToSliceE(v)
	if err != nil {
		f.fail(key, "must be a list")
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, el := range list {
		obj, err := cast.ToStringMapE(el)
		if err != nil {
			f.fail(key, "must be a list of objects")
			return nil
		}
		out = append(out, obj)
	}
	return out
}
