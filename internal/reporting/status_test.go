package reporting_test

import (
	"testing"
	"time"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/reporting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tptr(t time.Time) *time.Time { return &t }

var day = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

func TestDeriveVisitStatus(t *testing.T) {
	t.Run("reason wins over both timestamps", func(t *testing.T) {
		f := reporting.VisitFacts{
			EndReasonEn: "Closed",
			StartedAt:   tptr(day.Add(9 * time.Hour)),
			FinishedAt:  tptr(day.Add(10 * time.Hour)),
		}
		assert.Equal(t, reporting.VisitEnded, reporting.DeriveVisitStatus(f))
	})

	t.Run("arabic-only reason also ends the visit", func(t *testing.T) {
		f := reporting.VisitFacts{EndReasonAr: "مغلق"}
		assert.Equal(t, reporting.VisitEnded, reporting.DeriveVisitStatus(f))
	})

	t.Run("whitespace reason does not count", func(t *testing.T) {
		f := reporting.VisitFacts{
			EndReasonEn: "   ",
			StartedAt:   tptr(day.Add(9 * time.Hour)),
			FinishedAt:  tptr(day.Add(10 * time.Hour)),
		}
		assert.Equal(t, reporting.VisitFinished, reporting.DeriveVisitStatus(f))
	})

	t.Run("both timestamps without reason is finished", func(t *testing.T) {
		f := reporting.VisitFacts{
			StartedAt:  tptr(day.Add(9 * time.Hour)),
			FinishedAt: tptr(day.Add(10 * time.Hour)),
		}
		assert.Equal(t, reporting.VisitFinished, reporting.DeriveVisitStatus(f))
	})

	t.Run("start only is pending", func(t *testing.T) {
		f := reporting.VisitFacts{StartedAt: tptr(day.Add(9 * time.Hour))}
		assert.Equal(t, reporting.VisitPending, reporting.DeriveVisitStatus(f))
	})

	t.Run("no timestamps is pending", func(t *testing.T) {
		assert.Equal(t, reporting.VisitPending, reporting.DeriveVisitStatus(reporting.VisitFacts{}))
	})
}

func TestMarketKey(t *testing.T) {
	t.Run("market id when present", func(t *testing.T) {
		f := reporting.VisitFacts{MarketID: " M-10 ", Store: "ignored"}
		assert.Equal(t, "m-10", reporting.MarketKey(f))
	})

	t.Run("location composite otherwise", func(t *testing.T) {
		a := reporting.VisitFacts{Store: "Carrefour", Branch: "B1", City: "Riyadh", Region: "Central"}
		b := reporting.VisitFacts{Store: "carrefour", Branch: "b1", City: "riyadh", Region: "central"}
		assert.Equal(t, reporting.MarketKey(a), reporting.MarketKey(b))
	})
}

func TestBestByMarket(t *testing.T) {
	t.Run("tier priority beats recency", func(t *testing.T) {
		pending := reporting.VisitFacts{
			Ref:       "pending",
			MarketID:  "m1",
			StartedAt: tptr(day.Add(9 * time.Hour)),
		}
		finished := reporting.VisitFacts{
			Ref:        "finished",
			MarketID:   "m1",
			StartedAt:  tptr(day.Add(8 * time.Hour)),
			FinishedAt: tptr(day.Add(8*time.Hour + 30*time.Minute)),
		}

		got := reporting.BestByMarket([]reporting.VisitFacts{pending, finished})
		require.Len(t, got, 1)
		assert.Equal(t, "finished", got[0].Ref)
	})

	t.Run("finished beats ended", func(t *testing.T) {
		ended := reporting.VisitFacts{
			Ref:         "ended",
			MarketID:    "m1",
			EndReasonEn: "Closed",
			StartedAt:   tptr(day.Add(11 * time.Hour)),
		}
		finished := reporting.VisitFacts{
			Ref:        "finished",
			MarketID:   "m1",
			StartedAt:  tptr(day.Add(8 * time.Hour)),
			FinishedAt: tptr(day.Add(9 * time.Hour)),
		}

		got := reporting.BestByMarket([]reporting.VisitFacts{ended, finished})
		require.Len(t, got, 1)
		assert.Equal(t, "finished", got[0].Ref)
	})

	t.Run("latest wins within a tier", func(t *testing.T) {
		early := reporting.VisitFacts{
			Ref:        "early",
			MarketID:   "m1",
			StartedAt:  tptr(day.Add(8 * time.Hour)),
			FinishedAt: tptr(day.Add(9 * time.Hour)),
		}
		late := reporting.VisitFacts{
			Ref:        "late",
			MarketID:   "m1",
			StartedAt:  tptr(day.Add(10 * time.Hour)),
			FinishedAt: tptr(day.Add(11 * time.Hour)),
		}

		got := reporting.BestByMarket([]reporting.VisitFacts{early, late})
		require.Len(t, got, 1)
		assert.Equal(t, "late", got[0].Ref)
	})

	t.Run("distinct markets each keep a representative", func(t *testing.T) {
		rows := []reporting.VisitFacts{
			{Ref: "a", MarketID: "m1"},
			{Ref: "b", MarketID: "m2"},
			{Ref: "c", Store: "S", Branch: "B", City: "C", Region: "R"},
		}
		got := reporting.BestByMarket(rows)
		assert.Len(t, got, 3)
	})
}
