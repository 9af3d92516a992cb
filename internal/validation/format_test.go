package validation

import (
	"errors"
	"testing"
)

type color string

func TestFormatValidValues(t *testing.T) {
	tests := []struct {
		values []color
		want   string
	}{
		{nil, ""},
		{[]color{"red"}, "red"},
		{[]color{"red", "green", "blue"}, "red, green, blue"},
	}

	for _, tt := range tests {
		if got := FormatValidValues(tt.values); got != tt.want {
			t.Errorf("FormatValidValues(%v) = %q, want %q", tt.values, got, tt.want)
		}
	}
}

func TestFormatInvalidValueError(t *testing.T) {
	errInvalidColor := errors.New("invalid color")

	err := FormatInvalidValueError(errInvalidColor, color("mauve"), []color{"red", "green"})
	if !errors.Is(err, errInvalidColor) {
		t.Fatalf("expected error to wrap %v, got %v", errInvalidColor, err)
	}
	if want := `invalid color: "mauve" (valid: red, green)`; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}
