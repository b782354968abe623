package selection

import "testing"

func TestCaretIsCollapsed(t *testing.T) {
	s := Caret("cell-1", 4)
	if !s.IsCollapsed() {
		t.Error("caret should be collapsed")
	}
	if s.StartCell != "cell-1" || s.EndCell != "cell-1" {
		t.Errorf("unexpected cells %q/%q", s.StartCell, s.EndCell)
	}
	if s.StartOffset != 4 || s.EndOffset != 4 {
		t.Errorf("unexpected offsets %d/%d", s.StartOffset, s.EndOffset)
	}
}

func TestRangeNotCollapsed(t *testing.T) {
	if Range("a", 0, "b", 0).IsCollapsed() {
		t.Error("cross-cell range should not be collapsed")
	}
	if Range("a", 1, "a", 3).IsCollapsed() {
		t.Error("in-cell range should not be collapsed")
	}
	if !Range("a", 2, "a", 2).IsCollapsed() {
		t.Error("zero-width range should be collapsed")
	}
}
