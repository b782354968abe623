package document

import (
	"fmt"

	"github.com/dshills/inkstorm/internal/editor/block"
	"github.com/dshills/inkstorm/internal/editor/cell"
	"github.com/dshills/inkstorm/internal/editor/ident"
	"github.com/dshills/inkstorm/internal/editor/selection"
)

// SplitBlock splits the block at blockIndex at the given selection.
// Text strictly before the caret stays in the "pre" block, which keeps
// the original block's id and type; text at or after the caret moves to
// a fresh paragraph block. A non-collapsed selection deletes the
// spanned text as part of the split. The split never re-runs the
// markdown transform on either half.
func (d Document) SplitBlock(gen ident.Generator, blockIndex int, sel selection.Selection) (Document, error) {
	if err := d.checkIndex(blockIndex); err != nil {
		return Document{}, err
	}
	b := d.Blocks[blockIndex]
	if !b.IsTextual() {
		return Document{}, fmt.Errorf("split: %w: %s block", block.ErrUnsupportedOperation, b.Type)
	}

	pre, post, err := splitAt(gen, b, sel)
	if err != nil {
		return Document{}, err
	}

	next := d.Clone()
	next.Blocks = spliceBlocks(next.Blocks, blockIndex, pre, post)
	caret := selection.Caret(post.Cells[0].ID, 0)
	next.Selection = &caret
	return next, nil
}

// PasteBlocks splits the target block at the selection and splices the
// clipboard between the halves. Clipboard blocks are cloned again with
// fresh ids, so pasting twice never duplicates identities. An empty
// clipboard degenerates to a plain split.
func (d Document) PasteBlocks(gen ident.Generator, blockIndex int, sel selection.Selection) (Document, error) {
	if err := d.checkIndex(blockIndex); err != nil {
		return Document{}, err
	}
	b := d.Blocks[blockIndex]
	if !b.IsTextual() {
		return Document{}, fmt.Errorf("paste: %w: %s block", block.ErrUnsupportedOperation, b.Type)
	}

	pre, post, err := splitAt(gen, b, sel)
	if err != nil {
		return Document{}, err
	}

	next := d.Clone()
	middle := make([]block.Block, 0, len(next.Clipboard)+2)
	middle = append(middle, pre)
	for _, cb := range next.Clipboard {
		middle = append(middle, cb.Clone(gen))
	}
	middle = append(middle, post)
	next.Blocks = spliceBlocks(next.Blocks, blockIndex, middle...)
	caret := selection.Caret(post.Cells[0].ID, 0)
	next.Selection = &caret
	return next, nil
}

// SplitLine inserts a line-break boundary within a single cell instead
// of creating a new block (a soft return). A non-collapsed selection
// deletes the spanned text first.
func (d Document) SplitLine(blockIndex int, sel selection.Selection) (Document, error) {
	if err := d.checkIndex(blockIndex); err != nil {
		return Document{}, err
	}
	b := d.Blocks[blockIndex]
	if !b.IsTextual() {
		return Document{}, fmt.Errorf("split line: %w: %s block", block.ErrUnsupportedOperation, b.Type)
	}

	start, end, err := locate(b, sel)
	if err != nil {
		return Document{}, err
	}

	work := b.Copy()
	if start != end {
		work = deleteRange(work, start, end)
	}
	work.Cells[start.cellIndex] = work.Cells[start.cellIndex].InsertText(start.offset, "\n")

	next := d.Clone()
	next.Blocks[blockIndex] = work
	caret := selection.Caret(work.Cells[start.cellIndex].ID, start.offset+1)
	next.Selection = &caret
	return next, nil
}

// BackspaceFromStart applies a backspace at the first cell of the block
// at blockIndex. A removed block's cells splice into the previous
// block when one exists; removing the only block substitutes a fresh
// empty paragraph so the document is never left without a block to
// type into.
func (d Document) BackspaceFromStart(gen ident.Generator, blockIndex int) (Document, error) {
	if err := d.checkIndex(blockIndex); err != nil {
		return Document{}, err
	}
	b := d.Blocks[blockIndex]
	if !b.IsTextual() {
		return Document{}, fmt.Errorf("backspace: %w: %s block", block.ErrUnsupportedOperation, b.Type)
	}

	res, err := b.Backspace(b.Cells[0].ID)
	if err != nil {
		return Document{}, wrapBlockErr("backspace", err)
	}

	next := d.Clone()
	if !res.IsRemoved() {
		next.Blocks[blockIndex] = res.Block()
		return next, nil
	}

	if blockIndex > 0 {
		prev := next.Blocks[blockIndex-1]
		if !prev.IsTextual() {
			return Document{}, fmt.Errorf("backspace: %w: cannot join into %s block",
				block.ErrUnsupportedOperation, prev.Type)
		}
		next.Blocks[blockIndex-1] = joinBlocks(prev, b)
		next.Blocks = append(next.Blocks[:blockIndex], next.Blocks[blockIndex+1:]...)
		return next, nil
	}

	next.Blocks = append(next.Blocks[:blockIndex], next.Blocks[blockIndex+1:]...)
	if len(next.Blocks) == 0 {
		next.Blocks = []block.Block{block.New(gen, block.TypeParagraph)}
	}
	return next, nil
}

// splitAt builds the pre and post halves of a split. The pre half keeps
// the original block id and type; the post half is a fresh paragraph.
// The post half's first cell gets a fresh id because the pre half kept
// the split cell's identity; later cells migrate with their ids intact.
func splitAt(gen ident.Generator, b block.Block, sel selection.Selection) (pre, post block.Block, err error) {
	start, end, err := locate(b, sel)
	if err != nil {
		return block.Block{}, block.Block{}, err
	}

	pre = b.Copy()
	preCells := append([]cell.Cell(nil), pre.Cells[:start.cellIndex]...)
	preCells = append(preCells, pre.Cells[start.cellIndex].Truncate(start.offset))
	pre.Cells = preCells

	tail := b.Cells[end.cellIndex].Trim(end.offset).Clone(gen)
	postCells := []cell.Cell{tail}
	postCells = append(postCells, b.Cells[end.cellIndex+1:]...)

	post = block.Block{
		ID:    gen.NewID(),
		Type:  block.TypeParagraph,
		Cells: retagCells(postCells, block.TypeParagraph),
	}
	return pre, post, nil
}

// deleteRange removes the text spanned by [start, end] within a block,
// joining the boundary cells when the range crosses cells.
func deleteRange(b block.Block, start, end position) block.Block {
	next := b.Copy()
	if start.cellIndex == end.cellIndex {
		c := next.Cells[start.cellIndex]
		next.Cells[start.cellIndex] = cell.Join(c.Truncate(start.offset), c.Trim(end.offset))
		return next
	}
	head := next.Cells[start.cellIndex].Truncate(start.offset)
	tail := next.Cells[end.cellIndex].Trim(end.offset)
	joined := cell.Join(head, tail)
	cells := append([]cell.Cell(nil), next.Cells[:start.cellIndex]...)
	cells = append(cells, joined)
	cells = append(cells, next.Cells[end.cellIndex+1:]...)
	next.Cells = cells
	return next
}

// joinBlocks splices a removed block's cells into its predecessor: the
// removed block's first cell joins the previous block's last cell, and
// any remaining cells are appended re-tagged to the previous block's
// kind.
func joinBlocks(prev, removed block.Block) block.Block {
	next := prev.Copy()
	last := len(next.Cells) - 1
	rest := retagCells(removed.Cells, next.Type)
	next.Cells[last] = cell.Join(next.Cells[last], rest[0])
	next.Cells = append(next.Cells, rest[1:]...)
	return next
}

// spliceBlocks replaces the block at index with the given replacements.
func spliceBlocks(blocks []block.Block, index int, replacements ...block.Block) []block.Block {
	out := make([]block.Block, 0, len(blocks)-1+len(replacements))
	out = append(out, blocks[:index]...)
	out = append(out, replacements...)
	out = append(out, blocks[index+1:]...)
	return out
}
