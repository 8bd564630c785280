package models

import (
	"testing"
)

func TestSessionOptionsAreCopied(t *testing.T) {
	repo := NewSessionRepository()
	if repo.Options() != nil || repo.OptionCount() != 0 {
		t.Fatal("new repository has options")
	}

	in := []string{"a", "b"}
	repo.SetOptions(in, "opts.txt")
	in[0] = "changed"

	out := repo.Options()
	if out[0] != "a" || repo.OptionCount() != 2 || repo.OptionsSource() != "opts.txt" {
		t.Errorf("options = %q from %q", out, repo.OptionsSource())
	}
	out[1] = "changed"
	if repo.Options()[1] != "b" {
		t.Error("caller mutated stored options")
	}
}

func TestSessionLastAction(t *testing.T) {
	repo := NewSessionRepository()
	if _, ok := repo.LastAction(); ok {
		t.Fatal("LastAction on a new session")
	}

	repo.Record(ActionClickCell, "(0,0)")
	repo.Record(ActionSaveGame, "game.bng")

	last, ok := repo.LastAction()
	if !ok || last.Kind != ActionSaveGame || last.Target != "game.bng" || last.Time.IsZero() {
		t.Errorf("LastAction = %+v, %v", last, ok)
	}
}

func TestSessionLastGamePath(t *testing.T) {
	repo := NewSessionRepository()
	repo.SetLastGamePath("/tmp/x.bng")
	if got := repo.LastGamePath(); got != "/tmp/x.bng" {
		t.Errorf("LastGamePath = %q", got)
	}
}
