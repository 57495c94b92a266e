package reporting_test

import (
	"testing"
	"time"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/reporting"
	"github.com/stretchr/testify/assert"
)

func set(ids ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func TestDeriveCompletion(t *testing.T) {
	t.Run("partial acknowledgement", func(t *testing.T) {
		c := reporting.DeriveCompletion(set("a", "b", "c"), []string{"a", "b"})
		assert.Equal(t, 2, c.CompletedCount)
		assert.False(t, c.FullyDone)
	})

	t.Run("unrelated acknowledgement ids are ignored", func(t *testing.T) {
		c := reporting.DeriveCompletion(set("a", "b", "c"), []string{"a", "b", "c", "d"})
		assert.Equal(t, 3, c.CompletedCount)
		assert.True(t, c.FullyDone)
	})

	t.Run("acknowledgements compare through normalization", func(t *testing.T) {
		c := reporting.DeriveCompletion(set("a", "b"), []string{" A ", "B"})
		assert.Equal(t, 2, c.CompletedCount)
		assert.True(t, c.FullyDone)
	})

	t.Run("empty audience is never fully done", func(t *testing.T) {
		c := reporting.DeriveCompletion(set(), []string{"a"})
		assert.Equal(t, 0, c.AudienceSize)
		assert.False(t, c.FullyDone)
	})
}

func TestCompletionWithAudienceSize(t *testing.T) {
	t.Run("shrunken roster never reports fully done below the send-time size", func(t *testing.T) {
		// Sent to 3 recipients; one has since left the roster.
		c := reporting.DeriveCompletion(set("a", "b"), []string{"a", "b"}).WithAudienceSize(3)
		assert.Equal(t, 3, c.AudienceSize)
		assert.Equal(t, 2, c.CompletedCount)
		assert.False(t, c.FullyDone)
	})

	t.Run("fully done holds once the send-time size is met", func(t *testing.T) {
		c := reporting.DeriveCompletion(set("a", "b"), []string{"a", "b"}).WithAudienceSize(2)
		assert.True(t, c.FullyDone)
	})

	t.Run("non-positive size keeps the live derivation", func(t *testing.T) {
		c := reporting.DeriveCompletion(set("a"), []string{"a"}).WithAudienceSize(0)
		assert.Equal(t, 1, c.AudienceSize)
		assert.True(t, c.FullyDone)
	})
}

func TestDeriveDisplayStatus(t *testing.T) {
	assert.Equal(t, reporting.StatusQueued, reporting.DeriveDisplayStatus(0, 0))
	assert.Equal(t, reporting.StatusRead, reporting.DeriveDisplayStatus(1, 0))
	assert.Equal(t, reporting.StatusActioned, reporting.DeriveDisplayStatus(1, 1))
	// Action implies read display-wise even without a read receipt.
	assert.Equal(t, reporting.StatusActioned, reporting.DeriveDisplayStatus(0, 2))
}

func TestDeltaSeconds(t *testing.T) {
	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	t.Run("whole seconds, floored", func(t *testing.T) {
		assert.Equal(t, int64(90), reporting.DeltaSeconds(base.Add(90*time.Second+700*time.Millisecond), base))
	})

	t.Run("clock skew clamps to zero", func(t *testing.T) {
		assert.Equal(t, int64(0), reporting.DeltaSeconds(base.Add(-5*time.Second), base))
	})
}

func TestFormatDelta(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m 0s"},
		{200, "3m 20s"},
		{3599, "59m 59s"},
		{3600, "1h 0m"},
		{7530, "2h 5m"},
		{-10, "0s"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, reporting.FormatDelta(tc.seconds))
	}
}
