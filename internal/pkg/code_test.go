package pkg

import (
	"regexp"
	"strings"
	"testing"
)

func TestRandDigitsWidth(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := RandDigits(6)
		if err != nil {
			t.Fatalf("RandDigits: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q, want 6 digits", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit in %q", code)
			}
		}
	}
}

func TestRandAliasShape(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z][a-z]+[A-Z][a-z]+\d{3}$`)
	for i := 0; i < 20; i++ {
		alias, err := RandAlias()
		if err != nil {
			t.Fatalf("RandAlias: %v", err)
		}
		if !pattern.MatchString(alias) {
			t.Errorf("alias %q does not match AdjectiveNounNNN", alias)
		}
	}
}

func TestRandUsernameShape(t *testing.T) {
	pattern := regexp.MustCompile(`^user_[a-z0-9]{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		name, err := RandUsername()
		if err != nil {
			t.Fatalf("RandUsername: %v", err)
		}
		if !pattern.MatchString(name) {
			t.Errorf("username %q", name)
		}
		seen[name] = true
	}
	if len(seen) < 2 {
		t.Errorf("usernames should vary, got %v", seen)
	}
}

func TestHashEmailIsCaseInsensitive(t *testing.T) {
	a := HashEmail("Student@AITPUNE.edu.in")
	b := HashEmail("  student@aitpune.edu.in ")
	if a != b {
		t.Errorf("hash must be stable under case and whitespace: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("hex sha256 should be 64 chars, got %d", len(a))
	}
	if !strings.EqualFold(a, strings.ToLower(a)) {
		t.Errorf("hash should be lowercase hex")
	}
}
