package entityid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePrefixed(t *testing.T) {
	g := NewGenerator()

	id := g.Generate("quot")
	assert.True(t, strings.HasPrefix(id, "quot_"))
	assert.Equal(t, "quot", Prefix(id))

	bare := g.Generate("")
	assert.NotContains(t, bare, "_")
	assert.Empty(t, Prefix(bare))
}

func TestGenerateUniqueAndSortable(t *testing.T) {
	g := NewGenerator()

	seen := make(map[string]struct{})
	var prev string
	for i := 0; i < 1000; i++ {
		id := g.Generate("x")
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
		if prev != "" && id <= prev {
			t.Fatalf("ids not monotonic: %s after %s", id, prev)
		}
		prev = id
	}
}

func TestPrefixCompound(t *testing.T) {
	// Prefixes may themselves contain underscores.
	g := NewGenerator()
	id := g.Generate("prod_price")
	assert.Equal(t, "prod_price", Prefix(id))
}
