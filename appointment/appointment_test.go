package appointment

import (
	"errors"
	"testing"
)

func TestSelect(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"1", "10:00 AM Monday"},
		{"2", "11:30 AM Tuesday"},
		{" 3\n", "2:00 PM Wednesday"},
	}
	for _, tc := range cases {
		got, err := Select(tc.input, DefaultSlots)
		if err != nil {
			t.Errorf("Select(%q): %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Select(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestSelectInvalid(t *testing.T) {
	for _, input := range []string{"", "0", "4", "-1", "two", "2.5", "1 please"} {
		got, err := Select(input, DefaultSlots)
		if !errors.Is(err, ErrInvalidSelection) {
			t.Errorf("Select(%q) error = %v, want ErrInvalidSelection", input, err)
		}
		if got != "" {
			t.Errorf("Select(%q) returned slot %q on failure", input, got)
		}
	}
	if _, err := Select("1", nil); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("empty slot list should reject every choice, got %v", err)
	}
}

func TestMenu(t *testing.T) {
	want := "1) 10:00 AM Monday\n2) 11:30 AM Tuesday\n3) 2:00 PM Wednesday"
	if got := Menu(DefaultSlots); got != want {
		t.Errorf("Menu = %q, want %q", got, want)
	}
}
