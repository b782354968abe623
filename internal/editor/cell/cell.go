// Package cell implements the smallest addressable text unit of a
// document: a run of text with inline formatting markers. Cells are
// immutable value types; every operation returns a new Cell.
package cell

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/inkstorm/internal/editor/ident"
)

// Kind tags how a cell renders inside its block. It is derived from the
// owning block's type and is never serialized.
type Kind string

const (
	// KindText is a plain inline text run.
	KindText Kind = "text"
	// KindListItem marks a cell rendered as its own list item line.
	KindListItem Kind = "list-item"
)

// Modifier is an inline format marker covering a rune range of the
// cell's text. Start is inclusive, End exclusive.
type Modifier struct {
	Type  string
	Start int
	End   int
}

// Cell is a run of text with inline formatting.
// The id is immutable after creation.
type Cell struct {
	ID        string
	Kind      Kind
	Text      string
	Modifiers []Modifier
}

// New creates a cell with a fresh id and no modifiers.
func New(gen ident.Generator, text string) Cell {
	return Cell{ID: gen.NewID(), Kind: KindText, Text: text}
}

// WithText returns a copy with the same id and replaced text.
func (c Cell) WithText(text string) Cell {
	next := c.copy()
	next.Text = text
	return next
}

// WithKind returns a copy re-tagged to the given kind.
func (c Cell) WithKind(k Kind) Cell {
	next := c.copy()
	next.Kind = k
	return next
}

// Len returns the text length in runes. Offsets into a cell are rune
// offsets, never byte offsets.
func (c Cell) Len() int {
	n := 0
	for range c.Text {
		n++
	}
	return n
}

// Join combines target and source into one cell that keeps target's id.
// Source modifiers are shifted by target's rune length.
func Join(target, source Cell) Cell {
	joined := target.copy()
	joined.Text = target.Text + source.Text
	shift := target.Len()
	for _, m := range source.Modifiers {
		joined.Modifiers = append(joined.Modifiers, Modifier{
			Type:  m.Type,
			Start: m.Start + shift,
			End:   m.End + shift,
		})
	}
	return joined
}

// Trim removes the first prefixLen runes. Modifiers are shifted down
// and clamped; modifiers that fall entirely inside the removed prefix
// are dropped. Used to strip markdown trigger prefixes after transform.
func (c Cell) Trim(prefixLen int) Cell {
	if prefixLen <= 0 {
		return c.copy()
	}
	runes := []rune(c.Text)
	if prefixLen > len(runes) {
		prefixLen = len(runes)
	}
	next := Cell{ID: c.ID, Kind: c.Kind, Text: string(runes[prefixLen:])}
	for _, m := range c.Modifiers {
		start := m.Start - prefixLen
		end := m.End - prefixLen
		if end <= 0 {
			continue
		}
		if start < 0 {
			start = 0
		}
		next.Modifiers = append(next.Modifiers, Modifier{Type: m.Type, Start: start, End: end})
	}
	return next
}

// Truncate keeps only the first length runes. Modifiers are clamped to
// the new length; modifiers that start at or beyond it are dropped.
func (c Cell) Truncate(length int) Cell {
	runes := []rune(c.Text)
	if length < 0 {
		length = 0
	}
	if length >= len(runes) {
		return c.copy()
	}
	next := Cell{ID: c.ID, Kind: c.Kind, Text: string(runes[:length])}
	for _, m := range c.Modifiers {
		if m.Start >= length {
			continue
		}
		end := m.End
		if end > length {
			end = length
		}
		next.Modifiers = append(next.Modifiers, Modifier{Type: m.Type, Start: m.Start, End: end})
	}
	return next
}

// InsertText inserts s at the given rune offset, shifting modifiers
// that begin at or after the insertion point.
func (c Cell) InsertText(offset int, s string) Cell {
	runes := []rune(c.Text)
	if offset < 0 {
		offset = 0
	}
	if offset > len(runes) {
		offset = len(runes)
	}
	next := c.copy()
	next.Text = string(runes[:offset]) + s + string(runes[offset:])
	n := runeLen(s)
	for i, m := range next.Modifiers {
		if m.Start >= offset {
			next.Modifiers[i].Start += n
		}
		if m.End > offset {
			next.Modifiers[i].End += n
		}
	}
	return next
}

// Clone returns a copy with a fresh id and identical text/modifiers.
// Clipboard paste clones cells to avoid id collisions.
func (c Cell) Clone(gen ident.Generator) Cell {
	next := c.copy()
	next.ID = gen.NewID()
	return next
}

// Slice returns the rune range [start, end) of the cell's text.
func (c Cell) Slice(start, end int) string {
	runes := []rune(c.Text)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

// Signal reports what the owning block must do after a cell-level
// backspace.
type Signal int

const (
	// SignalNone means the backspace was handled locally.
	SignalNone Signal = iota
	// SignalJoinPrevious means the caret was at offset 0 of a non-empty
	// cell: join this cell into its predecessor.
	SignalJoinPrevious
	// SignalRemove means the cell was already empty: remove it.
	SignalRemove
)

// Backspace applies a backspace with the caret at the given rune
// offset. A caret past the start deletes the preceding grapheme cluster
// locally; a caret at offset 0 of a non-empty cell asks the block to
// join into the previous cell; a backspace on an empty cell asks the
// block to remove it. Signals are only meaningful for non-first cells;
// the block handles first-cell backspaces itself.
func (c Cell) Backspace(offset int) (Cell, Signal) {
	if c.Text == "" {
		return c, SignalRemove
	}
	if offset <= 0 {
		return c, SignalJoinPrevious
	}
	next := c.copy()
	next.Text = deleteGraphemeBefore(c.Text, offset)
	deleted := c.Len() - runeLen(next.Text)
	next.Modifiers = shiftModifiersForDelete(c.Modifiers, offset-deleted, deleted)
	return next, SignalNone
}

// deleteGraphemeBefore removes the grapheme cluster ending at the given
// rune offset.
func deleteGraphemeBefore(text string, offset int) string {
	runes := []rune(text)
	if offset > len(runes) {
		offset = len(runes)
	}
	head := string(runes[:offset])
	clusterStart := 0
	count := 0
	gr := uniseg.NewGraphemes(head)
	for gr.Next() {
		clusterStart = count
		count += len(gr.Runes())
	}
	return string(runes[:clusterStart]) + string(runes[offset:])
}

// shiftModifiersForDelete adjusts modifiers after deleting `count`
// runes starting at rune offset `at`.
func shiftModifiersForDelete(mods []Modifier, at, count int) []Modifier {
	var next []Modifier
	for _, m := range mods {
		start, end := m.Start, m.End
		if start >= at+count {
			start -= count
		} else if start > at {
			start = at
		}
		if end >= at+count {
			end -= count
		} else if end > at {
			end = at
		}
		if end <= start {
			continue
		}
		next = append(next, Modifier{Type: m.Type, Start: start, End: end})
	}
	return next
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// Copy returns a deep copy preserving the id.
func (c Cell) Copy() Cell {
	return c.copy()
}

func (c Cell) copy() Cell {
	next := Cell{ID: c.ID, Kind: c.Kind, Text: c.Text}
	if len(c.Modifiers) > 0 {
		next.Modifiers = make([]Modifier, len(c.Modifiers))
		copy(next.Modifiers, c.Modifiers)
	}
	return next
}
