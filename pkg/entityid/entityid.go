// Package entityid generates prefixed ULID identifiers for persisted
// entities, e.g. "quot_01HZX3V9K2M4Q8R6T0W1Y5A7C9".
package entityid

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator produces monotonic, prefix-tagged ULIDs. Safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Generate returns a new id of the form "<prefix>_<ulid>". An empty prefix
// yields the bare ULID.
func (g *Generator) Generate(prefix string) string {
	g.mu.Lock()
	id := ulid.MustNew(ulid.Timestamp(time.Now().UTC()), g.entropy)
	g.mu.Unlock()

	if prefix == "" {
		return id.String()
	}
	return prefix + "_" + id.String()
}

// Prefix reports the prefix portion of an id, or "" when the id carries none.
func Prefix(id string) string {
	idx := strings.LastIndex(id, "_")
	if idx <= 0 {
		return ""
	}
	return id[:idx]
}
