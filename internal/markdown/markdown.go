// Package markdown renders task descriptions for the terminal.
package markdown

import (
	"strings"
	"sync"

	internalstrings "github.com/amonks/focus/internal/strings"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

type renderer interface {
	Render(string) (string, error)
}

var (
	cacheMu sync.Mutex
	cache   = map[int]renderer{}
)

// Render word-wraps markdown to width and prefixes every line with indent
// spaces. Blank input renders as "". Markup glamour cannot handle, including
// input that makes it panic, falls back to the text as written.
func Render(value string, width, indent int) string {
	value = internalstrings.TrimTrailingNewlines(internalstrings.NormalizeNewlines(value))
	if strings.TrimSpace(value) == "" {
		return ""
	}
	indent = max(indent, 0)
	return indentLines(trimPadding(format(value, max(width-indent, 1))), indent)
}

// RenderOrDash renders value unindented, or returns "-" when it is blank.
func RenderOrDash(value string, width int) string {
	if out := Render(value, width, 0); out != "" {
		return out
	}
	return "-"
}

func format(value string, width int) (out string) {
	defer func() {
		if recover() != nil {
			out = value
		}
	}()
	r := rendererFor(width)
	if r == nil {
		return value
	}
	formatted, err := r.Render(value)
	if err != nil {
		return value
	}
	return formatted
}

func rendererFor(width int) renderer {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if r, ok := cache[width]; ok {
		return r
	}
	noMargin := uint(0)
	style := styles.ASCIIStyleConfig
	style.Document.Margin = &noMargin
	style.Item.BlockPrefix = "- "
	r, err := glamour.NewTermRenderer(glamour.WithStyles(style), glamour.WithWordWrap(width))
	if err != nil {
		return nil
	}
	cache[width] = r
	return r
}

// trimPadding drops the blank lines glamour adds around a document and the
// trailing spaces it pads each line with.
func trimPadding(value string) string {
	lines := strings.Split(value, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func indentLines(value string, spaces int) string {
	if spaces == 0 || value == "" {
		return value
	}
	prefix := strings.Repeat(" ", spaces)
	return prefix + strings.ReplaceAll(value, "\n", "\n"+prefix)
}
