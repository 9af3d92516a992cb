package ids

import (
	"maps"
	"testing"
)

func TestUniquePrefixLengths(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want map[string]int
	}{
		{
			name: "shared leading characters",
			ids:  []string{"2u3iutfd", "2a9k1111", "abc12345"},
			want: map[string]int{"2u3iutfd": 2, "2a9k1111": 2, "abc12345": 1},
		},
		{
			name: "duplicates and blanks dropped",
			ids:  []string{"abc", "", "ABC"},
			want: map[string]int{"abc": 1},
		},
		{
			name: "id that prefixes another",
			ids:  []string{"ab", "abcd", "abce"},
			want: map[string]int{"ab": 2, "abcd": 4, "abce": 4},
		},
		{
			name: "empty",
			ids:  nil,
			want: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UniquePrefixLengths(tt.ids); !maps.Equal(got, tt.want) {
				t.Fatalf("UniquePrefixLengths(%v) = %v, want %v", tt.ids, got, tt.want)
			}
		})
	}
}

func TestMatchPrefix(t *testing.T) {
	ids := NormalizeUniqueIDs([]string{"abcd1234", "ABCE5678", "zz", "zzq"})

	tests := []struct {
		prefix    string
		match     string
		found     bool
		ambiguous bool
	}{
		{prefix: "abcd", match: "abcd1234", found: true},
		{prefix: "ABCE", match: "abce5678", found: true},
		{prefix: "abc", found: true, ambiguous: true},
		{prefix: "zz", match: "zz", found: true},
		{prefix: "zzq", match: "zzq", found: true},
		{prefix: "q"},
		{prefix: ""},
	}

	for _, tt := range tests {
		match, found, ambiguous := MatchPrefix(ids, tt.prefix)
		if match != tt.match || found != tt.found || ambiguous != tt.ambiguous {
			t.Errorf("MatchPrefix(%q) = %q, %v, %v; want %q, %v, %v",
				tt.prefix, match, found, ambiguous, tt.match, tt.found, tt.ambiguous)
		}
	}
}
