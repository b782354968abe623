// Package selection provides the caret/selection value type that
// anchors edit operations. A selection addresses text by (cell id,
// rune offset) pairs; it never owns the cells it references.
package selection

// Selection is a range between two (cell, offset) positions.
// Selection is an immutable value type. A collapsed selection, with
// equal endpoints, is a caret.
type Selection struct {
	StartCell   string
	StartOffset int
	EndCell     string
	EndOffset   int
}

// Caret creates a collapsed selection at the given position.
func Caret(cellID string, offset int) Selection {
	return Selection{StartCell: cellID, StartOffset: offset, EndCell: cellID, EndOffset: offset}
}

// Range creates a selection spanning two positions.
func Range(startCell string, startOffset int, endCell string, endOffset int) Selection {
	return Selection{
		StartCell:   startCell,
		StartOffset: startOffset,
		EndCell:     endCell,
		EndOffset:   endOffset,
	}
}

// IsCollapsed reports whether the selection is a caret.
func (s Selection) IsCollapsed() bool {
	return s.StartCell == s.EndCell && s.StartOffset == s.EndOffset
}
