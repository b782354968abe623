// Package document implements the document value: an ordered block
// sequence plus clipboard and selection state, with the split, paste,
// copy and backspace orchestration that crosses block boundaries.
//
// Documents are immutable values. Every operation deep-copies and
// returns a new Document, so history can retain prior snapshots without
// copy-on-write bookkeeping. Ownership is exclusive top-down: the
// document owns its blocks, blocks own their cells; selections refer to
// cells by id only.
package document

import (
	"errors"
	"fmt"

	"github.com/dshills/inkstorm/internal/editor/block"
	"github.com/dshills/inkstorm/internal/editor/cell"
	"github.com/dshills/inkstorm/internal/editor/ident"
	"github.com/dshills/inkstorm/internal/editor/selection"
)

// DefaultTitle seeds the heading of a freshly created document.
const DefaultTitle = "Untitled"

// Document is an ordered sequence of blocks plus editing state.
type Document struct {
	ID               string
	Blocks           []block.Block
	SelectedBlockIDs []string
	Clipboard        []block.Block
	Selection        *selection.Selection
}

// New creates a document seeded with a heading and an empty paragraph.
func New(gen ident.Generator) Document {
	return NewWithTitle(gen, DefaultTitle)
}

// NewWithTitle creates a seeded document with the given heading text.
func NewWithTitle(gen ident.Generator, title string) Document {
	return Document{
		ID: gen.NewID(),
		Blocks: []block.Block{
			block.NewWithText(gen, block.TypeHeading1, title),
			block.New(gen, block.TypeParagraph),
		},
	}
}

// Clone returns a deep copy preserving all ids.
func (d Document) Clone() Document {
	next := Document{ID: d.ID}
	if d.Blocks != nil {
		next.Blocks = make([]block.Block, len(d.Blocks))
		for i := range d.Blocks {
			next.Blocks[i] = d.Blocks[i].Copy()
		}
	}
	if d.SelectedBlockIDs != nil {
		next.SelectedBlockIDs = append([]string(nil), d.SelectedBlockIDs...)
	}
	if d.Clipboard != nil {
		next.Clipboard = make([]block.Block, len(d.Clipboard))
		for i := range d.Clipboard {
			next.Clipboard[i] = d.Clipboard[i].Copy()
		}
	}
	if d.Selection != nil {
		sel := *d.Selection
		next.Selection = &sel
	}
	return next
}

// CloneFresh returns a deep copy with every id regenerated, for hosts
// duplicating a document wholesale. Clipboard, selection state and
// block selection do not carry over.
func (d Document) CloneFresh(gen ident.Generator) Document {
	next := Document{ID: gen.NewID()}
	if d.Blocks != nil {
		next.Blocks = make([]block.Block, len(d.Blocks))
		for i := range d.Blocks {
			next.Blocks[i] = d.Blocks[i].Clone(gen)
		}
	}
	return next
}

// BlockIndex returns the index of the block with the given id, or -1.
func (d Document) BlockIndex(blockID string) int {
	for i, b := range d.Blocks {
		if b.ID == blockID {
			return i
		}
	}
	return -1
}

// SelectBlocks sets the multi-block selection. No other state changes.
func (d Document) SelectBlocks(blockIDs []string) Document {
	next := d.Clone()
	next.SelectedBlockIDs = append([]string(nil), blockIDs...)
	return next
}

// CopyBlocks fills the clipboard with deep clones (fresh ids) of the
// blocks matching the given ids, in input order. Cloning here means
// later document edits cannot alias clipboard content. Unknown ids are
// skipped; copy is total.
func (d Document) CopyBlocks(gen ident.Generator, blockIDs []string) Document {
	next := d.Clone()
	next.Clipboard = nil
	for _, id := range blockIDs {
		if i := next.BlockIndex(id); i >= 0 {
			next.Clipboard = append(next.Clipboard, next.Blocks[i].Clone(gen))
		}
	}
	return next
}

// UpdateCellText replaces one cell's text. Auto-transform is a separate
// step; see ResolveTransformAt.
func (d Document) UpdateCellText(blockIndex int, cellID, text string) (Document, error) {
	if err := d.checkIndex(blockIndex); err != nil {
		return Document{}, err
	}
	updated, err := d.Blocks[blockIndex].UpdateCell(cellID, text)
	if err != nil {
		return Document{}, wrapBlockErr("update cell", err)
	}
	next := d.Clone()
	next.Blocks[blockIndex] = updated
	return next, nil
}

// ResolveTransformAt runs the markdown prefix transform on one block.
func (d Document) ResolveTransformAt(blockIndex int) (Document, error) {
	if err := d.checkIndex(blockIndex); err != nil {
		return Document{}, err
	}
	transformed, err := d.Blocks[blockIndex].ResolveTransform()
	if err != nil {
		return Document{}, wrapBlockErr("resolve transform", err)
	}
	next := d.Clone()
	next.Blocks[blockIndex] = transformed
	return next, nil
}

// UpdateCodeContent routes a text edit into a code block's payload.
func (d Document) UpdateCodeContent(blockIndex int, content string) (Document, error) {
	if err := d.checkIndex(blockIndex); err != nil {
		return Document{}, err
	}
	updated, err := d.Blocks[blockIndex].UpdateCode(content)
	if err != nil {
		return Document{}, wrapBlockErr("update code", err)
	}
	next := d.Clone()
	next.Blocks[blockIndex] = updated
	return next, nil
}

// UpdateTableCell routes a text edit into a table block's payload.
func (d Document) UpdateTableCell(blockIndex int, header bool, row, col int, value string) (Document, error) {
	if err := d.checkIndex(blockIndex); err != nil {
		return Document{}, err
	}
	updated, err := d.Blocks[blockIndex].UpdateTableCell(header, row, col, value)
	if err != nil {
		return Document{}, wrapBlockErr("update table cell", err)
	}
	next := d.Clone()
	next.Blocks[blockIndex] = updated
	return next, nil
}

func (d Document) checkIndex(blockIndex int) error {
	if blockIndex < 0 || blockIndex >= len(d.Blocks) {
		return fmt.Errorf("%w: block index %d of %d", ErrBlockIndexOutOfRange, blockIndex, len(d.Blocks))
	}
	return nil
}

// wrapBlockErr converts block-level lookup failures into the document's
// selection error while keeping the original in the chain.
func wrapBlockErr(op string, err error) error {
	if errors.Is(err, block.ErrCellNotFound) {
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidSelection, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// position is a resolved selection endpoint inside a block.
type position struct {
	cellIndex int
	offset    int
}

// locate resolves a selection's endpoints within one block and
// normalizes their order. Unknown cell ids and out-of-bounds offsets
// fail fast: a bad selection means the host and the model have
// desynchronized, so clamping would hide the bug.
func locate(b block.Block, sel selection.Selection) (start, end position, err error) {
	start, err = locateOne(b, sel.StartCell, sel.StartOffset)
	if err != nil {
		return position{}, position{}, err
	}
	end, err = locateOne(b, sel.EndCell, sel.EndOffset)
	if err != nil {
		return position{}, position{}, err
	}
	if end.cellIndex < start.cellIndex ||
		(end.cellIndex == start.cellIndex && end.offset < start.offset) {
		start, end = end, start
	}
	return start, end, nil
}

func locateOne(b block.Block, cellID string, offset int) (position, error) {
	i := b.CellIndex(cellID)
	if i < 0 {
		return position{}, fmt.Errorf("%w: cell %q not in block %q", ErrInvalidSelection, cellID, b.ID)
	}
	if offset < 0 || offset > b.Cells[i].Len() {
		return position{}, fmt.Errorf("%w: offset %d out of bounds for cell %q (len %d)",
			ErrInvalidSelection, offset, cellID, b.Cells[i].Len())
	}
	return position{cellIndex: i, offset: offset}, nil
}

// retagCells returns cells re-tagged to the kind implied by a block type.
func retagCells(cells []cell.Cell, t block.Type) []cell.Cell {
	kind := block.CellKindFor(t)
	out := make([]cell.Cell, len(cells))
	for i, c := range cells {
		out[i] = c.WithKind(kind)
	}
	return out
}
