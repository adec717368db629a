package player

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	got, err := NormalizeName("  Alice ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "Alice" {
		t.Errorf("expected 'Alice', got %q", got)
	}

	for _, blank := range []string{"", "   ", "\t\n"} {
		if _, err := NormalizeName(blank); !errors.Is(err, ErrInvalidName) {
			t.Errorf("NormalizeName(%q) expected ErrInvalidName, got %v", blank, err)
		}
	}
}

func TestNameKey(t *testing.T) {
	same := [][]string{
		{"Alice", "ALICE", " alice "},
		{"Émile", "ÉMILE", "émile"},
		{"Ωmega", "ωMEGA"},
	}
	for _, group := range same {
		for _, name := range group[1:] {
			if NameKey(name) != NameKey(group[0]) {
				t.Errorf("expected %q and %q to share a key, got %q and %q", group[0], name, NameKey(group[0]), NameKey(name))
			}
		}
	}

	if NameKey("Alice") == NameKey("Alicia") {
		t.Error("expected Alice and Alicia to differ")
	}
	if NameKey("Émile") == NameKey("Emile") {
		t.Error("expected accents to be kept")
	}
}

func TestCheckNames(t *testing.T) {
	healthy := []StoredName{
		{ID: 1, Name: "Émile", Key: NameKey("Émile")},
		{ID: 2, Name: "Riot", Key: NameKey("Riot")},
	}
	if problems := CheckNames(healthy); len(problems) != 0 {
		t.Errorf("expected no problems, got %v", problems)
	}

	broken := []StoredName{
		{ID: 1, Name: "Émile", Key: NameKey("Émile")},
		{ID: 2, Name: "émile", Key: "émile-legacy"},
		{ID: 3, Name: "Riot", Key: NameKey("Riot")},
	}
	problems := CheckNames(broken)
	if len(problems) != 2 {
		t.Fatalf("expected a stale key and a duplicate, got %v", problems)
	}
	if !strings.Contains(problems[0], "stale name key") || !strings.Contains(problems[1], "held by 2 players") {
		t.Errorf("unexpected problems: %v", problems)
	}
}

func TestConflictError(t *testing.T) {
	cause := errors.New("conflict")
	err := &ConflictError{Name: "Alice", Attempts: MaxResolveAttempts, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("expected ConflictError to unwrap to its cause")
	}
	want := `could not resolve player "Alice" after 3 attempts: conflict`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
