package block

import "errors"

// Errors returned by block operations.
var (
	// ErrCellNotFound indicates the referenced cell id is not in the block.
	ErrCellNotFound = errors.New("cell not found")

	// ErrUnsupportedOperation indicates a structural operation on a
	// table or code block.
	ErrUnsupportedOperation = errors.New("unsupported operation for block type")
)
