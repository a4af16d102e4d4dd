package main

import (
	"errors"
	"testing"

	"github.com/bodul/crosswords/puzzle"
)

func newTestSession(words ...puzzle.Word) *Session {
	return newSession("test", "", puzzle.New(words[0], words[1:]...))
}

func TestSessionAddPlayer(t *testing.T) {
	sess := newTestSession(hw(0, 0, "CAT"))

	p1 := sess.AddPlayer("Alice")
	p2 := sess.AddPlayer("Bob")

	if p1.Pseudo != "Alice" || p2.Pseudo != "Bob" {
		t.Fatal("unexpected pseudo")
	}
	if p1.Color == p2.Color {
		t.Fatal("players should have different colors")
	}

	// Adding same pseudo returns existing player.
	if again := sess.AddPlayer("Alice"); again != p1 {
		t.Fatal("same pseudo should return same player")
	}

	sess.RemovePlayer("Alice")
	if _, ok := sess.Players()["Alice"]; ok {
		t.Fatal("Alice should have been removed")
	}
}

func TestSessionPlace(t *testing.T) {
	sess := newTestSession(hw(0, 0, "CAT"))

	if !sess.Place(vw(0, 0, "COW"), "Alice") {
		t.Fatal("expected crossing word to be accepted")
	}
	if sess.Place(vw(2, 0, "DOG"), "Bob") {
		t.Fatal("expected mismatched crossing to be rejected")
	}

	view := sess.View()
	if len(view.Words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(view.Words))
	}
	if view.Words[1].Author != "Alice" {
		t.Fatalf("expected author Alice, got %q", view.Words[1].Author)
	}
	if view.Horizontal != 1 || view.Vertical != 1 {
		t.Fatalf("expected 1/1 words, got %d/%d", view.Horizontal, view.Vertical)
	}
	if view.Width != 3 || view.Height != 3 {
		t.Fatalf("expected 3x3, got %dx%d", view.Width, view.Height)
	}
	if view.Bounds == nil || view.Bounds.Right != 2 || view.Bounds.Bottom != 2 {
		t.Fatalf("unexpected bounds %+v", view.Bounds)
	}
}

func TestSessionMergeCarriesAuthors(t *testing.T) {
	dst := newTestSession(hw(0, 0, "CAT"))
	src := newTestSession(hw(10, 10, "EMU"))
	src.Place(vw(0, 0, "COW"), "Bob")

	if n := dst.Merge(src); n != 2 {
		t.Fatalf("expected 2 accepted words, got %d", n)
	}
	view := dst.View()
	if view.Words[2].Text != "COW" || view.Words[2].Author != "Bob" {
		t.Fatalf("expected COW by Bob, got %+v", view.Words[2])
	}
}

func TestSessionMergeSelf(t *testing.T) {
	sess := newTestSession(hw(0, 0, "CAT"), vw(0, 0, "COW"))
	if n := sess.Merge(sess); n != 0 {
		t.Fatalf("merging a puzzle into itself should accept nothing, got %d", n)
	}
}

func TestSessionSnapshotIsCopy(t *testing.T) {
	sess := newTestSession(hw(0, 0, "CAT"))
	snap := sess.Snapshot()
	snap.InsertWord(hw(0, 5, "DOG"))

	if n := sess.Snapshot().Len(); n != 1 {
		t.Fatalf("snapshot should not alias the session, got %d words", n)
	}
}

func TestSessionRender(t *testing.T) {
	sess := newTestSession(hw(0, 0, "GO"))
	grid, err := sess.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if grid != ". . . .\n. G O .\n. . . .\n" {
		t.Fatalf("unexpected grid:\n%s", grid)
	}

	sess.Place(hw(0, 1<<40, "GO"), "")
	if _, err := sess.Render(); !errors.Is(err, puzzle.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}
