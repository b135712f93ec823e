package service_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/timhorst/horsthomes/internal/service"
)

func TestRenderMarkdown(t *testing.T) {
	out := service.RenderMarkdown("# Heading\n\nSome **bold** text.")
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("output missing bold markup: %q", out)
	}
	if !strings.Contains(out, "<h1") {
		t.Errorf("output missing heading: %q", out)
	}
}

func TestRenderMarkdownSanitizesHTML(t *testing.T) {
	out := service.RenderMarkdown("hello <script>alert(1)</script> world")
	if strings.Contains(out, "<script") {
		t.Errorf("script tag survived sanitization: %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("text content lost: %q", out)
	}
}

func TestDeriveExcerpt(t *testing.T) {
	short := service.DeriveExcerpt("## Intro\n\nA *short* post.")
	if short != "Intro A short post." {
		t.Errorf("short excerpt = %q", short)
	}

	long := service.DeriveExcerpt(strings.Repeat("window replacement ", 20))
	if len(long) > 170 {
		t.Errorf("excerpt too long: %d bytes", len(long))
	}
	if !strings.HasSuffix(long, "…") {
		t.Errorf("truncated excerpt should end with ellipsis: %q", long)
	}
	// Truncation lands on a word boundary, never mid-word.
	trimmed := strings.TrimSuffix(long, "…")
	if strings.HasSuffix(trimmed, " ") {
		t.Errorf("excerpt ends with trailing space: %q", long)
	}
	last := trimmed[strings.LastIndex(trimmed, " ")+1:]
	if last != "window" && last != "replacement" {
		t.Errorf("excerpt cut mid-word: %q", last)
	}
}

func TestDeriveExcerptMultibyteSafe(t *testing.T) {
	// Unspaced multi-byte content has no word boundary to cut at; the
	// truncation must still land on a rune boundary.
	got := service.DeriveExcerpt(strings.Repeat("窓", 300))
	if !utf8.ValidString(got) {
		t.Fatalf("excerpt is not valid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated excerpt should end with ellipsis: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 161 {
		t.Errorf("rune count = %d, want 160 plus the ellipsis", n)
	}
}
