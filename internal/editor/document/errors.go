package document

import "errors"

// Errors returned by document operations. Structural operations on
// table and code blocks surface block.ErrUnsupportedOperation through
// the error chain.
var (
	// ErrInvalidSelection indicates a selection that references an
	// unknown cell or an out-of-bounds offset.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrBlockIndexOutOfRange indicates a block index outside the
	// document's block sequence.
	ErrBlockIndexOutOfRange = errors.New("block index out of range")
)
