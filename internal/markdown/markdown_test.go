package markdown

import (
	"strings"
	"testing"
)

type panicRenderer struct{}

func (panicRenderer) Render(string) (string, error) {
	panic("unsupported markup")
}

func TestRender_FallsBackWhenRendererPanics(t *testing.T) {
	const width, indent = 17, 2

	// Render asks for a renderer sized to the space left after the indent.
	cacheMu.Lock()
	cache[width-indent] = panicRenderer{}
	cacheMu.Unlock()
	t.Cleanup(func() {
		cacheMu.Lock()
		delete(cache, width-indent)
		cacheMu.Unlock()
	})

	if got := Render("call the **bank**\r\n", width, indent); got != "  call the **bank**" {
		t.Fatalf("Render = %q, want raw text", got)
	}
}

func TestRenderOrDash(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "-"},
		{"  \n\n", "-"},
		{"plain words", "plain words"},
		{"plain words\n\nsecond paragraph", "plain words\n\nsecond paragraph"},
	}

	for _, tt := range tests {
		if got := RenderOrDash(tt.input, 80); got != tt.want {
			t.Errorf("RenderOrDash(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRender_IndentsFormattedMarkdown(t *testing.T) {
	out := Render("Draft the **quarterly** report.\n\n- outline\n- numbers", 80, 2)
	for _, want := range []string{"quarterly", "- outline", "- numbers"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if line != "" && !strings.HasPrefix(line, "  ") {
			t.Errorf("line not indented: %q", line)
		}
	}
}

func TestRender_NoDocumentMargin(t *testing.T) {
	tests := []struct {
		indent int
		want   string
	}{
		{0, "pick three goals"},
		{4, "    pick three goals"},
	}

	for _, tt := range tests {
		if got := Render("pick three goals", 80, tt.indent); got != tt.want {
			t.Errorf("Render(indent %d) = %q, want %q", tt.indent, got, tt.want)
		}
	}
}
