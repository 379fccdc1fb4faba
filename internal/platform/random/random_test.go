package random

import (
	"strings"
	"testing"
)

func TestNewSeed(t *testing.T) {
	if _, err := NewSeed(); err != nil {
		t.Fatalf("NewSeed returned error: %v", err)
	}
}

// TestNewID checks the identifier shape: 26 lowercase base32 characters.
func TestNewID(t *testing.T) {
	first, err := NewID()
	if err != nil {
		t.Fatalf("NewID returned error: %v", err)
	}
	if len(first) != 26 {
		t.Fatalf("expected 26 characters, got %d (%q)", len(first), first)
	}
	if first != strings.ToLower(first) {
		t.Fatalf("expected lowercase id, got %q", first)
	}

	second, err := NewID()
	if err != nil {
		t.Fatalf("NewID returned error: %v", err)
	}
	if first == second {
		t.Fatalf("consecutive ids collided: %q", first)
	}
}
