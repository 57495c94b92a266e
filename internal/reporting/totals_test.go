package reporting_test

import (
	"testing"
	"time"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/reporting"
	"github.com/stretchr/testify/assert"
)

func dayWindow() reporting.Window {
	return reporting.Window{Start: day, End: day.Add(24 * time.Hour)}
}

func TestComputeTotals(t *testing.T) {
	t.Run("visit seconds sum closed intervals", func(t *testing.T) {
		rows := []reporting.VisitFacts{
			{
				OwnerID:    "u1",
				StartedAt:  tptr(day.Add(9 * time.Hour)),
				FinishedAt: tptr(day.Add(10 * time.Hour)),
			},
			{
				OwnerID:   "u1",
				StartedAt: tptr(day.Add(11 * time.Hour)), // open visit, no contribution
			},
		}
		totals := reporting.ComputeTotals(rows, nil, dayWindow())
		assert.Equal(t, int64(3600), totals.VisitSeconds)
	})

	t.Run("midnight-spanning visits clip to the window", func(t *testing.T) {
		rows := []reporting.VisitFacts{
			{
				OwnerID:    "u1",
				StartedAt:  tptr(day.Add(23 * time.Hour)),
				FinishedAt: tptr(day.Add(26 * time.Hour)),
			},
		}
		totals := reporting.ComputeTotals(rows, nil, dayWindow())
		assert.Equal(t, int64(3600), totals.VisitSeconds)
	})

	t.Run("inverted intervals contribute zero", func(t *testing.T) {
		rows := []reporting.VisitFacts{
			{
				OwnerID:    "u1",
				StartedAt:  tptr(day.Add(10 * time.Hour)),
				FinishedAt: tptr(day.Add(9 * time.Hour)),
			},
		}
		totals := reporting.ComputeTotals(rows, nil, dayWindow())
		assert.Equal(t, int64(0), totals.VisitSeconds)
	})

	t.Run("work time counts only users in the row set and caps per user", func(t *testing.T) {
		rows := []reporting.VisitFacts{{OwnerID: "u1"}}
		sessions := []reporting.SessionRow{
			{UserID: "u1", LoginAt: day.Add(-30 * time.Hour), EndAt: day.Add(30 * time.Hour)}, // bad data
			{UserID: "u2", LoginAt: day.Add(9 * time.Hour), EndAt: day.Add(10 * time.Hour)},  // not in rows
		}
		totals := reporting.ComputeTotals(rows, sessions, dayWindow())
		assert.Equal(t, int64(86400), totals.WorkSeconds)
	})

	t.Run("travel time floors at zero", func(t *testing.T) {
		rows := []reporting.VisitFacts{
			{
				OwnerID:    "u1",
				StartedAt:  tptr(day.Add(9 * time.Hour)),
				FinishedAt: tptr(day.Add(9*time.Hour + 150*time.Second)),
			},
		}
		sessions := []reporting.SessionRow{
			{UserID: "u1", LoginAt: day.Add(9 * time.Hour), EndAt: day.Add(9*time.Hour + 100*time.Second)},
		}
		totals := reporting.ComputeTotals(rows, sessions, dayWindow())
		assert.Equal(t, int64(150), totals.VisitSeconds)
		assert.Equal(t, int64(100), totals.WorkSeconds)
		assert.Equal(t, int64(0), totals.TravelSeconds)
	})

	t.Run("travel time is work minus visit when positive", func(t *testing.T) {
		rows := []reporting.VisitFacts{
			{
				OwnerID:    "u1",
				StartedAt:  tptr(day.Add(9 * time.Hour)),
				FinishedAt: tptr(day.Add(10 * time.Hour)),
			},
		}
		sessions := []reporting.SessionRow{
			{UserID: "u1", LoginAt: day.Add(8 * time.Hour), EndAt: day.Add(12 * time.Hour)},
		}
		totals := reporting.ComputeTotals(rows, sessions, dayWindow())
		assert.Equal(t, int64(3*3600), totals.TravelSeconds)
	})

	t.Run("counts and percentages from derived status", func(t *testing.T) {
		rows := []reporting.VisitFacts{
			{OwnerID: "u1", StartedAt: tptr(day.Add(9 * time.Hour)), FinishedAt: tptr(day.Add(10 * time.Hour))},
			{OwnerID: "u2", EndReasonEn: "Closed"},
			{OwnerID: "u3"},
			{OwnerID: "u4"},
		}
		totals := reporting.ComputeTotals(rows, nil, dayWindow())
		assert.Equal(t, 4, totals.Total)
		assert.Equal(t, 1, totals.Finished)
		assert.Equal(t, 1, totals.Ended)
		assert.Equal(t, 2, totals.Pending)
		assert.InDelta(t, 25.0, totals.FinishedPct, 0.001)
		assert.InDelta(t, 50.0, totals.PendingPct, 0.001)
	})

	t.Run("empty row set yields zero percentages", func(t *testing.T) {
		totals := reporting.ComputeTotals(nil, nil, dayWindow())
		assert.Equal(t, 0, totals.Total)
		assert.Equal(t, 0.0, totals.FinishedPct)
		assert.Equal(t, int64(0), totals.TravelSeconds)
	})
}
