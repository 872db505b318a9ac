package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown_EmptyInput(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(""))
}

func TestRenderMarkdown_PlainText(t *testing.T) {
	result := RenderMarkdown("checkout service")
	assert.Contains(t, result, "checkout service")
}

func TestRenderMarkdown_Bold(t *testing.T) {
	result := RenderMarkdown("**owned by payments**")
	assert.Contains(t, result, "<strong>owned by payments</strong>")
}

func TestRenderMarkdown_Link(t *testing.T) {
	result := RenderMarkdown("[runbook](https://wiki.example.com/runbook)")
	assert.Contains(t, result, `href="https://wiki.example.com/runbook"`)
}

func TestRenderMarkdown_StripsScript(t *testing.T) {
	result := RenderMarkdown("hello <script>alert(1)</script>")
	assert.NotContains(t, result, "<script>")
	assert.Contains(t, result, "hello")
}

func TestRenderMarkdown_StripsEventHandlers(t *testing.T) {
	result := RenderMarkdown(`<img src="x.png" onerror="alert(1)">`)
	assert.NotContains(t, result, "onerror")
}
