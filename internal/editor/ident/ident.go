// Package ident provides id generation for documents, blocks and cells.
//
// Every structural object in a document carries an opaque id that is
// unique within the document. Construction, split, paste and clone all
// mint fresh ids, so the generator is injected rather than global:
// production code uses UUIDs, tests use a sequential generator to
// assert exact ids.
package ident

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator mints fresh opaque ids.
type Generator interface {
	NewID() string
}

type uuidGenerator struct{}

// UUID returns a Generator backed by random UUIDs.
func UUID() Generator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

// SequentialGenerator mints ids of the form "<prefix>-1", "<prefix>-2", ...
// It is intended for tests that need deterministic ids.
type SequentialGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// Sequential creates a deterministic generator with the given prefix.
func Sequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// NewID returns the next id in the sequence.
func (g *SequentialGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next)
}
