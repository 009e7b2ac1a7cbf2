package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LLwassim/LLwassim.github.io/work"
	"github.com/fatih/color"
)

const testCaseStudy = `---
title: Edge Inference
role: [Engineer]
timeline: 2024
stack: [Go]
summary: Summary
outcomes: [Shipped]
context: Context
decisions: [Decide]
whatIdDoNext: [More]
featured: true
order: 1
category: AI
image: /img.png
---
Body
`

func newTestOptions(t *testing.T, adminToken string) options {
	t.Helper()
	contentDir := t.TempDir()
	path := filepath.Join(contentDir, "case-studies", "edge-inference.mdx")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(testCaseStudy), 0644); err != nil {
		t.Fatal(err)
	}
	return options{
		port:       "0",
		contentDir: contentDir,
		dataDir:    t.TempDir(),
		adminToken: adminToken,
	}
}

func newTestHandler(t *testing.T, adminToken string) http.Handler {
	t.Helper()
	opts := newTestOptions(t, adminToken)
	a, err := newApp(opts)
	if err != nil {
		t.Fatal(err)
	}
	svc, err := newServices(a, opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.stop)
	return svc.handler
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestHandler(t, "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("health = %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("expected request id header")
	}
}

func TestAdminRoutes(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		header string
		want   int
	}{
		{"disabled", "", "", http.StatusNotFound},
		{"missing token", "secret", "", http.StatusUnauthorized},
		{"valid token", "secret", "Bearer secret", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, tt.token)

			req := httptest.NewRequest(http.MethodPost, "/api/admin/reload", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestPublicRoutes(t *testing.T) {
	h := newTestHandler(t, "secret")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/work?category=AI", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "edge-inference") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRunWork(t *testing.T) {
	color.NoColor = true
	opts := newTestOptions(t, "")

	var buf bytes.Buffer
	if err := runWork(&buf, opts, "AI", ""); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); !strings.Contains(got, "★ Edge Inference [AI] edge-inference") {
		t.Errorf("output = %q", got)
	}

	buf.Reset()
	if err := runWork(&buf, opts, "Mobile", ""); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No work in this category.") {
		t.Errorf("output = %q", buf.String())
	}

	if err := runWork(&buf, opts, "AI", "random"); err == nil {
		t.Error("expected error for unknown order")
	}
}

func TestPrintItems(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printItems(&buf, []work.Item{
		{ID: "a", Title: "Alpha", Category: "AI"},
		{ID: "b", Title: "Beta", Category: "Data", Featured: true},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.HasPrefix(lines[0], "  Alpha") || !strings.HasPrefix(lines[1], "★ Beta") {
		t.Errorf("lines = %q", lines)
	}
}

func TestContactRateLimitKey(t *testing.T) {
	form := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer form.Close()

	tests := []struct {
		name       string
		trustProxy bool
		wantLimit  bool
	}{
		{"forwarded for ignored", false, true},
		{"forwarded for trusted", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := newTestOptions(t, "")
			opts.trustProxy = tt.trustProxy
			a, err := newApp(opts)
			if err != nil {
				t.Fatal(err)
			}
			cfg := a.siteStore.Get()
			cfg.Integrations.FormEndpoint = form.URL
			if err := a.siteStore.Update(cfg); err != nil {
				t.Fatal(err)
			}
			svc, err := newServices(a, opts)
			if err != nil {
				t.Fatal(err)
			}
			t.Cleanup(svc.stop)

			limited := false
			for i := 0; i < contactBurst+2; i++ {
				body := fmt.Sprintf(`{"name":"Ada","email":"ada@example.com","message":"Hello %d"}`, i)
				req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
				req.RemoteAddr = "198.51.100.9:4000"
				req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
				rec := httptest.NewRecorder()
				svc.handler.ServeHTTP(rec, req)
				if rec.Code == http.StatusTooManyRequests {
					limited = true
				}
			}
			if limited != tt.wantLimit {
				t.Errorf("rate limited = %v, want %v", limited, tt.wantLimit)
			}
		})
	}
}
