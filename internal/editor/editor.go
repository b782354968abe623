package editor

import (
	"sync"

	"github.com/dshills/inkstorm/internal/editor/codec"
	"github.com/dshills/inkstorm/internal/editor/document"
	"github.com/dshills/inkstorm/internal/editor/history"
	"github.com/dshills/inkstorm/internal/editor/ident"
	"github.com/dshills/inkstorm/internal/editor/selection"
)

// Re-export commonly used types for convenience.
type (
	// Document is the editable document value.
	Document = document.Document

	// Selection anchors an edit at (cell id, offset) positions.
	Selection = selection.Selection
)

// ChangeKind categorizes what a mutation did, for host re-rendering.
type ChangeKind string

// Change kinds reported to the host.
const (
	ChangeText  ChangeKind = "text"
	ChangeSplit ChangeKind = "split"
	ChangePaste ChangeKind = "paste"
	ChangeMerge ChangeKind = "merge"
)

// ChangeSet describes a completed mutation: which blocks the host must
// re-render and what kind of change produced them.
type ChangeSet struct {
	Kind     ChangeKind
	BlockIDs []string
}

// Editor is the main facade for the document editing core. It combines
// the document model, undo/redo history and id generation into a
// unified API consumed by host collaborators, which translate raw input
// events into the structured intents below.
//
// The model itself is pure values; the facade serializes access with a
// read-write mutex so hosts may call it from multiple goroutines.
type Editor struct {
	mu sync.RWMutex

	doc     document.Document
	history *history.History
	gen     ident.Generator

	autoTransform  bool
	maxUndoEntries int
	seedTitle      string
	initDoc        *document.Document
}

// New creates an Editor with the given options. Without options the
// editor holds a freshly seeded document, UUID ids and the default
// undo depth.
func New(opts ...Option) *Editor {
	e := &Editor{
		autoTransform:  true,
		maxUndoEntries: history.DefaultMaxEntries,
		seedTitle:      document.DefaultTitle,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.gen == nil {
		e.gen = ident.UUID()
	}
	if e.initDoc != nil {
		e.doc = e.initDoc.Clone()
	} else {
		e.doc = document.NewWithTitle(e.gen, e.seedTitle)
	}
	e.history = history.New(e.maxUndoEntries)
	return e
}

// Load creates an Editor from canonical document JSON.
func Load(raw []byte, opts ...Option) (*Editor, error) {
	e := New(opts...)
	doc, err := codec.Normalize(raw, e.gen)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.doc = doc
	e.history.Clear()
	e.mu.Unlock()
	return e, nil
}

// Document returns a deep copy of the current document.
func (e *Editor) Document() Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Clone()
}

// Serialize produces the canonical JSON of the current document.
func (e *Editor) Serialize() ([]byte, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return codec.Serialize(e.doc)
}

// PlainText returns the plain-text projection of the current document.
func (e *Editor) PlainText() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return codec.PlainText(e.doc)
}

// HTML returns the HTML projection of the current document.
func (e *Editor) HTML() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return codec.HTML(e.doc)
}

// ============================================================================
// Selection and clipboard (no history)
// ============================================================================

// SelectBlocks sets the multi-block selection.
func (e *Editor) SelectBlocks(blockIDs []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = e.doc.SelectBlocks(blockIDs)
}

// CopyBlocks deep-clones the named blocks into the clipboard.
func (e *Editor) CopyBlocks(blockIDs []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = e.doc.CopyBlocks(e.gen, blockIDs)
}

// CopySelected copies the blocks in the current multi-block selection.
func (e *Editor) CopySelected() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = e.doc.CopyBlocks(e.gen, e.doc.SelectedBlockIDs)
}

// ============================================================================
// Mutating operations
// ============================================================================

// UpdateCellText replaces one cell's text and, unless auto-transform is
// disabled, resolves any markdown prefix the new text introduced.
func (e *Editor) UpdateCellText(blockIndex int, cellID, text string) (ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := e.doc.UpdateCellText(blockIndex, cellID, text)
	if err != nil {
		return ChangeSet{}, err
	}
	if e.autoTransform {
		next, err = next.ResolveTransformAt(blockIndex)
		if err != nil {
			return ChangeSet{}, err
		}
	}
	e.commit(next)
	return ChangeSet{Kind: ChangeText, BlockIDs: []string{next.Blocks[blockIndex].ID}}, nil
}

// SplitBlock splits a block at the selection into the original block
// and a fresh paragraph.
func (e *Editor) SplitBlock(blockIndex int, sel Selection) (ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := e.doc.SplitBlock(e.gen, blockIndex, sel)
	if err != nil {
		return ChangeSet{}, err
	}
	e.commit(next)
	return ChangeSet{
		Kind:     ChangeSplit,
		BlockIDs: []string{next.Blocks[blockIndex].ID, next.Blocks[blockIndex+1].ID},
	}, nil
}

// SplitLine inserts a soft line break inside a cell.
func (e *Editor) SplitLine(blockIndex int, sel Selection) (ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := e.doc.SplitLine(blockIndex, sel)
	if err != nil {
		return ChangeSet{}, err
	}
	e.commit(next)
	return ChangeSet{Kind: ChangeText, BlockIDs: []string{next.Blocks[blockIndex].ID}}, nil
}

// PasteBlocks splices the clipboard into the block at the selection.
func (e *Editor) PasteBlocks(blockIndex int, sel Selection) (ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	clipboardLen := len(e.doc.Clipboard)
	next, err := e.doc.PasteBlocks(e.gen, blockIndex, sel)
	if err != nil {
		return ChangeSet{}, err
	}
	e.commit(next)

	ids := make([]string, 0, clipboardLen+2)
	for i := blockIndex; i < blockIndex+clipboardLen+2; i++ {
		ids = append(ids, next.Blocks[i].ID)
	}
	return ChangeSet{Kind: ChangePaste, BlockIDs: ids}, nil
}

// BackspaceFromStart applies a backspace at the first cell of a block.
func (e *Editor) BackspaceFromStart(blockIndex int) (ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := e.doc.BackspaceFromStart(e.gen, blockIndex)
	if err != nil {
		return ChangeSet{}, err
	}
	e.commit(next)

	touched := blockIndex
	if touched >= len(next.Blocks) {
		touched = len(next.Blocks) - 1
	}
	return ChangeSet{Kind: ChangeMerge, BlockIDs: []string{next.Blocks[touched].ID}}, nil
}

// UpdateCodeContent routes a text edit into a code block.
func (e *Editor) UpdateCodeContent(blockIndex int, content string) (ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := e.doc.UpdateCodeContent(blockIndex, content)
	if err != nil {
		return ChangeSet{}, err
	}
	e.commit(next)
	return ChangeSet{Kind: ChangeText, BlockIDs: []string{next.Blocks[blockIndex].ID}}, nil
}

// UpdateTableCell routes a text edit into a table block.
func (e *Editor) UpdateTableCell(blockIndex int, header bool, row, col int, value string) (ChangeSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := e.doc.UpdateTableCell(blockIndex, header, row, col, value)
	if err != nil {
		return ChangeSet{}, err
	}
	e.commit(next)
	return ChangeSet{Kind: ChangeText, BlockIDs: []string{next.Blocks[blockIndex].ID}}, nil
}

// commit records the pre-mutation snapshot and installs the new value.
// Must be called with the write lock held, after the mutation succeeded.
func (e *Editor) commit(next document.Document) {
	e.history.Push(e.doc)
	e.doc = next
}

// ============================================================================
// Undo/redo
// ============================================================================

// Undo restores the previous snapshot. Undo on an empty stack is a
// defined no-op; the return value reports whether anything changed.
func (e *Editor) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev, ok := e.history.Undo(e.doc)
	if ok {
		e.doc = prev
	}
	return ok
}

// Redo restores the most recently undone snapshot.
func (e *Editor) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, ok := e.history.Redo(e.doc)
	if ok {
		e.doc = next
	}
	return ok
}

// CanUndo reports whether undo is available.
func (e *Editor) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo reports whether redo is available.
func (e *Editor) CanRedo() bool {
	return e.history.CanRedo()
}
