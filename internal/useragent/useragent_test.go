package useragent

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	agents, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(agents) == 0 {
		t.Fatal("built-in pool must not be empty")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.txt")
	content := "agent-one\n\n  agent-two  \n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	agents, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(agents) != 2 || agents[0] != "agent-one" || agents[1] != "agent-two" {
		t.Errorf("unexpected pool: %v", agents)
	}
}

func TestLoadEmptyFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.txt")
	if err := os.WriteFile(path, []byte("\n\n"), 0644); err != nil {
		t.Fatal(err)
	}

	agents, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(agents) == 0 {
		t.Fatal("empty file should fall back to built-in pool")
	}
}

func TestSelectorDeterministic(t *testing.T) {
	pool := []string{"a", "b", "c"}

	first := NewSelector(pool, rand.NewSource(42))
	second := NewSelector(pool, rand.NewSource(42))

	for i := 0; i < 20; i++ {
		if got, want := first.Pick(), second.Pick(); got != want {
			t.Fatalf("pick %d diverged: %q vs %q", i, got, want)
		}
	}
}

func TestSelectorEmpty(t *testing.T) {
	s := NewSelector(nil, rand.NewSource(1))
	if got := s.Pick(); got != "" {
		t.Errorf("expected empty pick, got %q", got)
	}

	var nilSel *Selector
	if got := nilSel.Pick(); got != "" {
		t.Errorf("nil selector should pick empty, got %q", got)
	}
}
