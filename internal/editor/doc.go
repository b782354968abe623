// Package editor provides the facade over the block-document editing
// core. It owns the current document value, the undo/redo history and
// the id generator, and exposes the structured intents hosts call after
// translating raw input events: text updates, splits, joins, clipboard
// paste and markdown auto-transform.
//
// Every mutation is value-semantic: the underlying packages return new
// document values and the facade swaps them in under a write lock,
// pushing the pre-mutation snapshot onto the history. Queries return
// deep copies, so hosts can never alias internal state.
package editor
