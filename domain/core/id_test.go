package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestParseSessionID tests session ID parsing
func TestParseSessionID(t *testing.T) {
	valid := NewSessionID().String()

	tests := []struct {
		input    string
		hasError bool
	}{
		{valid, false},
		{"  " + valid + " ", false},
		{"", true},
		{"   ", true},
		{"not-a-uuid", true},
	}

	for _, test := range tests {
		result, err := ParseSessionID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError {
			if err != nil {
				t.Errorf("Unexpected error for input '%s': %v", test.input, err)
			}
			if result.String() != valid {
				t.Errorf("Expected %s, got %s", valid, result)
			}
		}
	}
}

func TestNewHash(t *testing.T) {
	a := NewHash([]byte("A,B\n1,2\n"))
	b := NewHash([]byte("A,B\n1,2\n"))
	c := NewHash([]byte("A,B\n1,3\n"))

	if a != b {
		t.Errorf("Expected equal content to hash equally")
	}
	if a == c {
		t.Errorf("Expected different content to hash differently")
	}
	if len(a) != 64 || len(a.Short()) != 12 {
		t.Errorf("Unexpected hash lengths %d/%d", len(a), len(a.Short()))
	}
	if !Hash("").IsEmpty() {
		t.Error("Expected empty hash to be empty")
	}
}
