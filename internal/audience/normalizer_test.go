package audience_test

import (
	"testing"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/audience"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeID(t *testing.T) {
	t.Run("coerces mixed types to the same key", func(t *testing.T) {
		assert.Equal(t, "5", audience.NormalizeID(5))
		assert.Equal(t, "5", audience.NormalizeID("5"))
		assert.Equal(t, "5", audience.NormalizeID(" 5 "))
		assert.Equal(t, "5", audience.NormalizeID(int64(5)))
	})

	t.Run("nil becomes empty string", func(t *testing.T) {
		assert.Equal(t, "", audience.NormalizeID(nil))
	})

	t.Run("lower-cases and trims", func(t *testing.T) {
		assert.Equal(t, "abc-def", audience.NormalizeID("  ABC-Def\t"))
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := []string{"", " X ", "abc", "  5 ", "قائد"}
		for _, in := range inputs {
			once := audience.NormalizeID(in)
			assert.Equal(t, once, audience.NormalizeID(once))
		}
	})
}

func TestNormalizeIDs(t *testing.T) {
	t.Run("deduplicates via normalization", func(t *testing.T) {
		got := audience.NormalizeIDs([]string{"U1", " u1", "u2", "u1 "})
		assert.Equal(t, []string{"u1", "u2"}, got)
	})

	t.Run("drops empty values", func(t *testing.T) {
		got := audience.NormalizeIDs([]string{"", "  ", "u1"})
		assert.Equal(t, []string{"u1"}, got)
	})

	t.Run("empty input yields empty slice", func(t *testing.T) {
		assert.Empty(t, audience.NormalizeIDs(nil))
	})
}
