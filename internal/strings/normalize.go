// Package strings holds the text normalization shared by task titles,
// tags, and editor input.
package strings

import "strings"

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeWhitespace collapses runs of whitespace into single spaces.
func NormalizeWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// NormalizeLowerTrimSpace is the canonical form of a tag or enum value.
func NormalizeLowerTrimSpace(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// NormalizeNewlines converts CRLF and bare CR line endings to LF.
func NormalizeNewlines(value string) string {
	return newlineReplacer.Replace(value)
}

// TrimTrailingNewlines removes trailing CR/LF characters.
func TrimTrailingNewlines(value string) string {
	return strings.TrimRight(value, "\r\n")
}

// SplitList splits comma-separated values into canonical tags, dropping
// blanks and repeats while keeping first-seen order.
func SplitList(values ...string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, value := range values {
		for part := range strings.SplitSeq(value, ",") {
			part = NormalizeLowerTrimSpace(part)
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			out = append(out, part)
		}
	}
	return out
}
