package service

import (
	"bytes"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownOnce   sync.Once
	markdownEngine goldmark.Markdown
	htmlPolicy     *bluemonday.Policy
)

func initMarkdown() {
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	htmlPolicy = bluemonday.UGCPolicy()
}

// RenderMarkdown converts blog post markdown to sanitized HTML. Raw markdown
// is what gets persisted; rendering happens at read time.
func RenderMarkdown(content string) string {
	markdownOnce.Do(initMarkdown)

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return ""
	}
	return htmlPolicy.Sanitize(buf.String())
}

// excerptLength is the target length, in runes, of a derived excerpt.
const excerptLength = 160

// DeriveExcerpt produces a short plain-text excerpt from post content,
// truncated at a word boundary. Markdown punctuation is stripped first.
// Truncation counts runes so multi-byte text is never split mid-character.
func DeriveExcerpt(content string) string {
	plain := strings.NewReplacer(
		"#", "", "*", "", "_", "", "`", "", ">", "", "\n", " ",
	).Replace(content)
	plain = strings.Join(strings.Fields(plain), " ")

	runes := []rune(plain)
	if len(runes) <= excerptLength {
		return plain
	}
	cut := string(runes[:excerptLength])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}
