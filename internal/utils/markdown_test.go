package utils

import (
	"strings"
	"testing"
)

func TestRenderContentHTML(t *testing.T) {
	html := RenderContentHTML("# Goodbye\n\nIt was **fun**.")
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<strong>fun</strong>") {
		t.Errorf("markdown not rendered: %q", html)
	}
}

func TestRenderContentHTMLSanitizes(t *testing.T) {
	html := RenderContentHTML("bye <script>alert(1)</script>")
	if strings.Contains(html, "<script") {
		t.Errorf("script tag survived sanitization: %q", html)
	}
}

func TestRandStringLength(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s := RandStringBytesMaskImpr(8)
		if len(s) != 8 {
			t.Fatalf("length = %d", len(s))
		}
		seen[s] = true
	}
	if len(seen) < 45 {
		t.Errorf("ids collide too often: %d distinct out of 50", len(seen))
	}
}
