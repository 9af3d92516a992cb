package ids

import (
	"slices"
	"strings"
)

// NormalizeUniqueIDs lowercases ids and drops empty and duplicate entries,
// keeping first-seen order.
func NormalizeUniqueIDs(ids []string) []string {
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.ToLower(id)
		if id != "" && !slices.Contains(unique, id) {
			unique = append(unique, id)
		}
	}
	return unique
}

// MatchPrefix resolves prefix against normalized IDs. An exact match wins
// over longer IDs sharing the prefix; otherwise more than one candidate is
// reported as ambiguous.
func MatchPrefix(normalized []string, prefix string) (match string, found bool, ambiguous bool) {
	prefix = strings.ToLower(prefix)
	if prefix == "" {
		return "", false, false
	}
	if slices.Contains(normalized, prefix) {
		return prefix, true, false
	}

	var candidates int
	for _, id := range normalized {
		if strings.HasPrefix(id, prefix) {
			match = id
			candidates++
		}
	}
	switch candidates {
	case 0:
		return "", false, false
	case 1:
		return match, true, false
	default:
		return "", true, true
	}
}

// UniquePrefixLengths returns, for each normalized ID, the length of the
// shortest prefix no other ID shares. An ID that is itself a prefix of
// another gets its full length.
func UniquePrefixLengths(ids []string) map[string]int {
	sorted := NormalizeUniqueIDs(ids)
	slices.Sort(sorted)

	// In sorted order the longest shared prefix is always with a neighbor.
	lengths := make(map[string]int, len(sorted))
	for i, id := range sorted {
		shared := 0
		if i > 0 {
			shared = commonPrefixLen(id, sorted[i-1])
		}
		if i+1 < len(sorted) {
			shared = max(shared, commonPrefixLen(id, sorted[i+1]))
		}
		lengths[id] = min(shared+1, len(id))
	}
	return lengths
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
