package editor

import (
	"github.com/dshills/inkstorm/internal/editor/document"
	"github.com/dshills/inkstorm/internal/editor/ident"
)

// Option configures an Editor during construction.
type Option func(*Editor)

// WithDocument starts the editor from an existing document instead of a
// freshly seeded one.
func WithDocument(doc document.Document) Option {
	return func(e *Editor) {
		d := doc.Clone()
		e.initDoc = &d
	}
}

// WithGenerator sets the id generator used for new blocks and cells.
func WithGenerator(gen ident.Generator) Option {
	return func(e *Editor) {
		e.gen = gen
	}
}

// WithMaxUndoEntries bounds the undo stack depth.
func WithMaxUndoEntries(n int) Option {
	return func(e *Editor) {
		e.maxUndoEntries = n
	}
}

// WithoutAutoTransform disables markdown prefix resolution after text
// updates.
func WithoutAutoTransform() Option {
	return func(e *Editor) {
		e.autoTransform = false
	}
}

// WithSeedTitle sets the heading text of the seeded document. Ignored
// when WithDocument is also given.
func WithSeedTitle(title string) Option {
	return func(e *Editor) {
		e.seedTitle = title
	}
}
