package validation

import "testing"

func TestIsValidEmail(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"member1@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"not-an-email", false},
		{"missing@tld", false},
		{"@example.com", false},
	}
	for _, tc := range cases {
		if got := IsValidEmail(tc.value); got != tc.want {
			t.Fatalf("IsValidEmail(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestIsValidRollNumber(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"21B81A0501", true},
		{"21B81A05", false},
		{"21B81A05011", false},
		{"21B81A05-1", false},
	}
	for _, tc := range cases {
		if got := IsValidRollNumber(tc.value); got != tc.want {
			t.Fatalf("IsValidRollNumber(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestMatchesPattern(t *testing.T) {
	cases := []struct {
		name    string
		pattern string
		value   string
		want    bool
	}{
		{"roll rule pattern", RollNumberPattern, "21B81A0501", true},
		{"roll rule mismatch", RollNumberPattern, "short", false},
		{"email rule pattern", EmailPattern, "member1@example.com", true},
		{"ad-hoc pattern", `^\d{4}$`, "2026", true},
		{"ad-hoc mismatch", `^\d{4}$`, "20267", false},
		{"invalid pattern never matches", `(unclosed`, "anything", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MatchesPattern(tc.pattern, tc.value); got != tc.want {
				t.Fatalf("MatchesPattern(%q, %q) = %v, want %v", tc.pattern, tc.value, got, tc.want)
			}
		})
	}

	// A second lookup of the same ad-hoc pattern hits the cache.
	if !MatchesPattern(`^\d{4}$`, "1999") {
		t.Fatal("cached pattern did not match")
	}
}
