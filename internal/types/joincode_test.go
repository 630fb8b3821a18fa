package types

import "testing"

func TestNewJoinCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := NewJoinCode()
		if err != nil {
			t.Fatalf("new join code: %v", err)
		}
		if !ValidJoinCode(code) {
			t.Fatalf("generated code %q fails validation", code)
		}
		if seen[code] {
			t.Fatalf("duplicate code %q in 50 draws", code)
		}
		seen[code] = true
	}
}

func TestValidJoinCode(t *testing.T) {
	cases := []struct {
		code string
		ok   bool
	}{
		{"ABCD1234", true},
		{"ZZZZZZZZ", true},
		{"abcd1234", false}, // lowercase not in the alphabet
		{"ABC1234", false},  // too short
		{"ABCD12345", false},
		{"ABCD 123", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidJoinCode(tc.code); got != tc.ok {
			t.Errorf("ValidJoinCode(%q) = %v, want %v", tc.code, got, tc.ok)
		}
	}
}
