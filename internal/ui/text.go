package ui

import (
	"strings"

	internalstrings "github.com/amonks/focus/internal/strings"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// LineWidth is the default width for wrapped terminal text.
const LineWidth = 80

// WrapIndented collapses whitespace in each blank-line-separated paragraph
// of text, wraps it so that with margin leading spaces it fits in width,
// and applies the margin.
func WrapIndented(text string, width, margin int) string {
	margin = max(margin, 0)
	width = max(width-margin, 1)

	var paragraphs []string
	for p := range strings.SplitSeq(internalstrings.NormalizeNewlines(text), "\n\n") {
		if p = internalstrings.NormalizeWhitespace(p); p != "" {
			paragraphs = append(paragraphs, indent.String(wordwrap.String(p, width), uint(margin)))
		}
	}
	return strings.Join(paragraphs, "\n\n")
}
