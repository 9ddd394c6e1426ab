package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/lexgraph/pkg/explore"
	"github.com/matzehuels/lexgraph/pkg/lexicon"
)

func newTestModel(t *testing.T) ExploreModel {
	t.Helper()
	db, err := lexicon.LoadFile(hireDB)
	if err != nil {
		t.Fatal(err)
	}
	seed, _ := lexicon.ParseSenseID("01213223-n")
	x, err := explore.New(context.Background(), db, seed, explore.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return NewExploreModel(context.Background(), x)
}

func update(t *testing.T, m ExploreModel, msg tea.Msg) (ExploreModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	em, ok := next.(ExploreModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return em, cmd
}

func TestExploreModelExpand(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Busy || cmd == nil {
		t.Fatal("enter should start an expansion")
	}
	msg := cmd()
	em, ok := msg.(expandedMsg)
	if !ok {
		t.Fatalf("command returned %T, want expandedMsg", msg)
	}
	if em.err != nil || len(em.result.NewNodes) != 2 || len(em.result.Skipped) != 1 {
		t.Fatalf("expansion = %+v, %v", em.result, em.err)
	}

	m, _ = update(t, m, em)
	if m.Busy {
		t.Error("Busy still set after expandedMsg")
	}
	if !strings.Contains(m.Status, "2 new nodes") || !strings.Contains(m.Status, "1 skipped") {
		t.Errorf("Status = %q", m.Status)
	}

	// A second activation is a no-op.
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())
	if !strings.Contains(m.Status, "already expanded") {
		t.Errorf("Status = %q", m.Status)
	}
}

func TestExploreModelBusyIgnoresEnter(t *testing.T) {
	m := newTestModel(t)
	m.Busy = true
	if _, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("enter while busy should not start another expansion")
	}
}

func TestExploreModelNavigation(t *testing.T) {
	m := newTestModel(t)
	m.Height = 1

	// Only the seed exists: down stays put.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor != 0 {
		t.Fatalf("Cursor = %d, want 0", m.Cursor)
	}

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor != 2 || m.Offset != 2 {
		t.Errorf("Cursor, Offset = %d, %d, want 2, 2", m.Cursor, m.Offset)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2 at the end of the list", m.Cursor)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor != 1 || m.Offset != 1 {
		t.Errorf("Cursor, Offset = %d, %d, want 1, 1", m.Cursor, m.Offset)
	}
}

func TestExploreModelQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestExploreModelView(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	for _, want := range []string{"01213223-n", "hire", "not expanded", "[1/1]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())
	view = m.View()
	for _, want := range []string{"employment", "02409412-v", "hypernym", "[1/3]", "2 edges"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestExpandStatusError(t *testing.T) {
	got := expandStatus(expandedMsg{err: errors.New("boom")})
	if !strings.Contains(got, "boom") {
		t.Errorf("expandStatus() = %q", got)
	}
}
