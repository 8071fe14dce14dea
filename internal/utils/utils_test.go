package utils

import (
	"strings"
	"testing"
	"time"
)

func TestRenderMarkdownStripsScripts(t *testing.T) {
	out := RenderMarkdown("Olá <script>alert('xss')</script> **mundo**")
	if strings.Contains(out, "<script") {
		t.Errorf("script tag must be stripped: %q", out)
	}
	if !strings.Contains(out, "<strong>mundo</strong>") {
		t.Errorf("markdown should still render: %q", out)
	}
}

func TestRenderMarkdownStripsEventHandlers(t *testing.T) {
	out := RenderMarkdown(`<img src="x" onerror="alert(1)">`)
	if strings.Contains(out, "onerror") {
		t.Errorf("event handler must be stripped: %q", out)
	}
}

func TestSlugifyPortugueseTitles(t *testing.T) {
	slug := Slugify("Opinião: João votará amanhã?")
	if !strings.HasPrefix(slug, "opiniao-joao-votara-amanha-") {
		t.Errorf("unexpected slug: %q", slug)
	}
	for _, r := range slug {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
			t.Errorf("slug contains invalid rune %q: %q", r, slug)
		}
	}
}

func TestSlugifyEmptyAndDistinct(t *testing.T) {
	if Slugify("???") == "" {
		t.Error("symbol-only titles still get a slug")
	}
	if Slugify("mesmo título") == Slugify("mesmo título") {
		t.Error("equal titles must produce distinct slugs")
	}
}

func TestRandStringLengthAndAlphabet(t *testing.T) {
	s := RandStringBytesMaskImpr(8)
	if len(s) != 8 {
		t.Fatalf("expected length 8, got %d", len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune(letterBytes, r) {
			t.Errorf("unexpected rune %q", r)
		}
	}
}

func TestCacheSetGetAndTTL(t *testing.T) {
	cache := GetCache()

	cache.Set("k", "v", time.Minute)
	if got := cache.Get("k"); got != "v" {
		t.Errorf("expected v, got %v", got)
	}

	cache.Delete("k")
	if got := cache.Get("k"); got != nil {
		t.Errorf("expected nil after delete, got %v", got)
	}

	// Expired entries read as missing
	cache.Set("short", 1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	if got := cache.Get("short"); got != nil {
		t.Errorf("expected nil after expiry, got %v", got)
	}
}
