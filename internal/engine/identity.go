package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IdentityGenerator produces instance and session identifiers.
//
// Production roots use UUIDv7 (time-sortable). Tests inject a sequential
// generator so golden traces are stable.
type IdentityGenerator interface {
	Generate() string
}

// UUIDv7Generator generates UUIDv7 identifiers.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 string.
// Falls back to UUIDv4 if v7 generation fails.
func (UUIDv7Generator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// SequentialGenerator generates "<prefix>-1", "<prefix>-2", ...
type SequentialGenerator struct {
	prefix  string
	counter atomic.Int64
}

// NewSequentialGenerator creates a deterministic generator.
func NewSequentialGenerator(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate returns the next identifier.
func (g *SequentialGenerator) Generate() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.counter.Add(1))
}
