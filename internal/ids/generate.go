// Package ids derives short, stable identifiers from content hashes.
package ids

import (
	"crypto/sha256"
	"encoding/base32"
	"strings"
	"time"
)

// DefaultLength is the standard length for generated task IDs.
const DefaultLength = 8

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Generate returns the first length characters of the lowercase base32
// sha256 of input. Lengths past the 52-character digest are capped.
func Generate(input string, length int) string {
	if length <= 0 {
		return ""
	}
	sum := sha256.Sum256([]byte(input))
	digest := encoding.EncodeToString(sum[:])
	return strings.ToLower(digest[:min(length, len(digest))])
}

// GenerateWithTimestamp hashes parts, NUL-separated, followed by the
// timestamp in RFC 3339 with nanoseconds.
func GenerateWithTimestamp(timestamp time.Time, length int, parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(part)
		b.WriteByte(0)
	}
	b.WriteString(timestamp.Format(time.RFC3339Nano))
	return Generate(b.String(), length)
}
