// Package block implements typed document blocks: the semantic sections
// a document is made of. Text-bearing blocks own an ordered, non-empty
// cell sequence; table and code blocks carry specialized payloads.
// Blocks are immutable value types.
package block

import (
	"fmt"

	"github.com/dshills/inkstorm/internal/editor/cell"
	"github.com/dshills/inkstorm/internal/editor/ident"
)

// Type is the semantic type of a block.
type Type string

// Block types. Table and code blocks carry payloads instead of cells.
const (
	TypeParagraph         Type = "paragraph"
	TypeHeading1          Type = "heading-1"
	TypeHeading2          Type = "heading-2"
	TypeHeading3          Type = "heading-3"
	TypeBlockquote        Type = "blockquote"
	TypePreformatted      Type = "preformatted"
	TypeUnorderedListItem Type = "unordered-list-item"
	TypeTable             Type = "table"
	TypeCode              Type = "code"
)

// Valid reports whether t is a recognized block type.
func (t Type) Valid() bool {
	switch t {
	case TypeParagraph, TypeHeading1, TypeHeading2, TypeHeading3,
		TypeBlockquote, TypePreformatted, TypeUnorderedListItem,
		TypeTable, TypeCode:
		return true
	}
	return false
}

// TablePayload holds the rows of a table block.
type TablePayload struct {
	HeaderRows [][]string
	Rows       [][]string
}

// CodePayload holds the source text of a code block.
type CodePayload struct {
	Content  string
	Language string
}

// Block is a semantic document section. Exactly one of Cells, Table or
// Code is populated, depending on Type.
type Block struct {
	ID    string
	Type  Type
	Cells []cell.Cell
	Table *TablePayload
	Code  *CodePayload
}

// New creates a text-bearing block with one empty cell.
func New(gen ident.Generator, t Type) Block {
	b := Block{ID: gen.NewID(), Type: t}
	b.Cells = []cell.Cell{cell.New(gen, "").WithKind(CellKindFor(t))}
	return b
}

// NewWithText creates a text-bearing block whose single cell holds text.
func NewWithText(gen ident.Generator, t Type, text string) Block {
	b := Block{ID: gen.NewID(), Type: t}
	b.Cells = []cell.Cell{cell.New(gen, text).WithKind(CellKindFor(t))}
	return b
}

// NewTable creates a table block.
func NewTable(gen ident.Generator, headerRows, rows [][]string) Block {
	return Block{
		ID:    gen.NewID(),
		Type:  TypeTable,
		Table: &TablePayload{HeaderRows: copyRows(headerRows), Rows: copyRows(rows)},
	}
}

// NewCode creates a code block.
func NewCode(gen ident.Generator, content, language string) Block {
	return Block{
		ID:   gen.NewID(),
		Type: TypeCode,
		Code: &CodePayload{Content: content, Language: language},
	}
}

// IsTextual reports whether the block owns a cell sequence.
func (b Block) IsTextual() bool {
	return b.Type != TypeTable && b.Type != TypeCode
}

// CellKindFor returns the cell kind implied by a block type.
func CellKindFor(t Type) cell.Kind {
	if t == TypeUnorderedListItem {
		return cell.KindListItem
	}
	return cell.KindText
}

// CellIndex returns the index of the cell with the given id, or -1.
func (b Block) CellIndex(cellID string) int {
	for i, c := range b.Cells {
		if c.ID == cellID {
			return i
		}
	}
	return -1
}

// UpdateCell replaces the named cell's text. It does not run
// auto-transform; callers decide when to resolve transforms.
func (b Block) UpdateCell(cellID, text string) (Block, error) {
	if !b.IsTextual() {
		return Block{}, fmt.Errorf("%w: update cell on %s block", ErrUnsupportedOperation, b.Type)
	}
	i := b.CellIndex(cellID)
	if i < 0 {
		return Block{}, fmt.Errorf("%w: cell %q in block %q", ErrCellNotFound, cellID, b.ID)
	}
	next := b.Copy()
	next.Cells[i] = next.Cells[i].WithText(text)
	return next, nil
}

// Downgrade steps the block one level toward paragraph:
// heading-1 → heading-2 → heading-3 → paragraph; preformatted,
// unordered-list-item and blockquote → paragraph. Paragraph is
// terminal; table and code blocks are unaffected.
func (b Block) Downgrade() Block {
	next := b.Copy()
	switch b.Type {
	case TypeHeading1:
		next.Type = TypeHeading2
	case TypeHeading2:
		next.Type = TypeHeading3
	case TypeHeading3, TypePreformatted, TypeUnorderedListItem, TypeBlockquote:
		next.Type = TypeParagraph
	default:
		return next
	}
	for i := range next.Cells {
		next.Cells[i] = next.Cells[i].WithKind(CellKindFor(next.Type))
	}
	return next
}

// Result is the outcome of a block-level backspace: either the block
// was removed, or it was replaced by a mutated block. The document
// splices zero or one blocks back into its sequence accordingly.
type Result struct {
	removed bool
	block   Block
}

// Removed signals that the whole block should be deleted.
func Removed() Result {
	return Result{removed: true}
}

// Replaced wraps the block that takes the original's place.
func Replaced(b Block) Result {
	return Result{block: b}
}

// IsRemoved reports whether the block was removed.
func (r Result) IsRemoved() bool {
	return r.removed
}

// Block returns the replacement block. Only valid when !IsRemoved().
func (r Result) Block() Block {
	return r.block
}

// Backspace applies a backspace with the caret at the start of the
// named cell.
//
// At the first cell of a paragraph the whole block is removed. At the
// first cell of any other text-bearing type the block is downgraded one
// level and all cells drop to plain text, since the semantic meaning
// changed. At a later cell, the cell-level signal decides: an empty
// cell is removed, otherwise the cell joins into its predecessor.
func (b Block) Backspace(cellID string) (Result, error) {
	if !b.IsTextual() {
		return Result{}, fmt.Errorf("%w: backspace on %s block", ErrUnsupportedOperation, b.Type)
	}
	i := b.CellIndex(cellID)
	if i < 0 {
		return Result{}, fmt.Errorf("%w: cell %q in block %q", ErrCellNotFound, cellID, b.ID)
	}

	if i == 0 {
		if b.Type == TypeParagraph {
			return Removed(), nil
		}
		next := b.Downgrade()
		for j := range next.Cells {
			next.Cells[j] = next.Cells[j].WithKind(cell.KindText)
		}
		return Replaced(next), nil
	}

	// i > 0: delegate to the cell. i-1 is always a valid index here.
	_, sig := b.Cells[i].Backspace(0)
	next := b.Copy()
	switch sig {
	case cell.SignalRemove:
		next.Cells = append(next.Cells[:i], next.Cells[i+1:]...)
	case cell.SignalJoinPrevious:
		next.Cells[i-1] = cell.Join(next.Cells[i-1], next.Cells[i])
		next.Cells = append(next.Cells[:i], next.Cells[i+1:]...)
	}
	return Replaced(next), nil
}

// Clone returns a deep copy with fresh block and cell ids.
func (b Block) Clone(gen ident.Generator) Block {
	next := b.Copy()
	next.ID = gen.NewID()
	for i := range next.Cells {
		next.Cells[i] = next.Cells[i].Clone(gen)
	}
	return next
}

// Copy returns a deep copy preserving all ids.
func (b Block) Copy() Block {
	next := Block{ID: b.ID, Type: b.Type}
	if b.Cells != nil {
		next.Cells = make([]cell.Cell, len(b.Cells))
		for i := range b.Cells {
			next.Cells[i] = b.Cells[i].Copy()
		}
	}
	if b.Table != nil {
		next.Table = &TablePayload{
			HeaderRows: copyRows(b.Table.HeaderRows),
			Rows:       copyRows(b.Table.Rows),
		}
	}
	if b.Code != nil {
		c := *b.Code
		next.Code = &c
	}
	return next
}

// Text concatenates the text of all cells, or the payload text for
// table and code blocks.
func (b Block) Text() string {
	switch b.Type {
	case TypeCode:
		return b.Code.Content
	case TypeTable:
		var out string
		for _, row := range b.Table.HeaderRows {
			for _, s := range row {
				out += s
			}
		}
		for _, row := range b.Table.Rows {
			for _, s := range row {
				out += s
			}
		}
		return out
	default:
		var out string
		for _, c := range b.Cells {
			out += c.Text
		}
		return out
	}
}

// UpdateCode replaces a code block's source text.
func (b Block) UpdateCode(content string) (Block, error) {
	if b.Type != TypeCode {
		return Block{}, fmt.Errorf("%w: update code on %s block", ErrUnsupportedOperation, b.Type)
	}
	next := b.Copy()
	next.Code.Content = content
	return next, nil
}

// UpdateTableCell replaces one table cell. header selects between the
// header rows and the body rows.
func (b Block) UpdateTableCell(header bool, row, col int, value string) (Block, error) {
	if b.Type != TypeTable {
		return Block{}, fmt.Errorf("%w: update table cell on %s block", ErrUnsupportedOperation, b.Type)
	}
	next := b.Copy()
	rows := next.Table.Rows
	if header {
		rows = next.Table.HeaderRows
	}
	if row < 0 || row >= len(rows) || col < 0 || col >= len(rows[row]) {
		return Block{}, fmt.Errorf("%w: table cell (%d,%d) in block %q", ErrCellNotFound, row, col, b.ID)
	}
	rows[row][col] = value
	return next, nil
}

func copyRows(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = make([]string, len(r))
		copy(out[i], r)
	}
	return out
}
