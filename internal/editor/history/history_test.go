package history

import (
	"testing"

	"github.com/dshills/inkstorm/internal/editor/document"
	"github.com/dshills/inkstorm/internal/editor/ident"
)

func docWithID(id string) document.Document {
	return document.Document{ID: id}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	h := New(10)
	v1 := docWithID("v1")
	v2 := docWithID("v2")

	h.Push(v1) // mutating v1 -> v2 records v1

	got, ok := h.Undo(v2)
	if !ok || got.ID != "v1" {
		t.Fatalf("Undo = %q/%v, want v1/true", got.ID, ok)
	}
	got, ok = h.Redo(v1)
	if !ok || got.ID != "v2" {
		t.Fatalf("Redo = %q/%v, want v2/true", got.ID, ok)
	}
}

func TestUndoEmptyIsNoOp(t *testing.T) {
	h := New(10)
	cur := docWithID("cur")
	got, ok := h.Undo(cur)
	if ok {
		t.Error("Undo on empty stack should report false")
	}
	if got.ID != "cur" {
		t.Errorf("Undo returned %q, want the current document", got.ID)
	}
	if h.CanRedo() {
		t.Error("no-op undo must not create redo state")
	}
}

func TestRedoEmptyIsNoOp(t *testing.T) {
	h := New(10)
	cur := docWithID("cur")
	if _, ok := h.Redo(cur); ok {
		t.Error("Redo on empty stack should report false")
	}
}

func TestPushClearsFuture(t *testing.T) {
	h := New(10)
	h.Push(docWithID("v1"))
	h.Undo(docWithID("v2"))
	if !h.CanRedo() {
		t.Fatal("expected redo state after undo")
	}
	h.Push(docWithID("v1b"))
	if h.CanRedo() {
		t.Error("Push must clear the redo stack")
	}
}

func TestMaxEntries(t *testing.T) {
	h := New(3)
	for i := 0; i < 5; i++ {
		h.Push(docWithID("v"))
	}
	if got := h.UndoCount(); got != 3 {
		t.Errorf("UndoCount = %d, want 3", got)
	}
}

func TestHistoryWithRealDocument(t *testing.T) {
	gen := ident.Sequential("d")
	h := New(0) // default cap

	d := document.New(gen)
	edited, err := d.UpdateCellText(0, d.Blocks[0].Cells[0].ID, "changed")
	if err != nil {
		t.Fatalf("UpdateCellText: %v", err)
	}
	h.Push(d)

	restored, ok := h.Undo(edited)
	if !ok {
		t.Fatal("expected undo")
	}
	if restored.Blocks[0].Text() != document.DefaultTitle {
		t.Errorf("restored text = %q, want %q", restored.Blocks[0].Text(), document.DefaultTitle)
	}
}
