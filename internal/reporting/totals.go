package reporting

import (
	"time"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/audience"
)

// maxDailySessionSeconds caps one user's session contribution within a day
// window. Sessions that erroneously span multiple days otherwise poison the
// work-time total.
const maxDailySessionSeconds = 24 * 60 * 60

// SessionRow is one login session from the session-tracking source. EndAt
// is already resolved upstream to the first non-null of last-activity,
// logout and closed timestamps.
type SessionRow struct {
	UserID  string
	LoginAt time.Time
	EndAt   time.Time
}

// Window bounds a reporting day, half-open on neither side: intervals are
// clipped into [Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}

// Totals is the KPI summary for a filtered day of visits.
type Totals struct {
	VisitSeconds  int64 `json:"visitSeconds"`
	WorkSeconds   int64 `json:"workSeconds"`
	TravelSeconds int64 `json:"travelSeconds"`

	Total    int `json:"total"`
	Finished int `json:"finished"`
	Ended    int `json:"ended"`
	Pending  int `json:"pending"`

	FinishedPct float64 `json:"finishedPct"`
	EndedPct    float64 `json:"endedPct"`
	PendingPct  float64 `json:"pendingPct"`
}

// clippedSeconds clips [start, end] to the window and returns its positive
// length in whole seconds. Inverted intervals (end before start, usually
// clock corrections in the source) contribute zero.
func clippedSeconds(start, end time.Time, w Window) int64 {
	if start.Before(w.Start) {
		start = w.Start
	}
	if end.After(w.End) {
		end = w.End
	}
	if !end.After(start) {
		return 0
	}
	return int64(end.Sub(start) / time.Second)
}

// ComputeTotals rolls a filtered row set and its owners' sessions up into
// the day's totals.
//
// Visit time sums the clipped duration of every row with both timestamps.
// Work time sums, per user appearing in the rows, that user's clipped
// session seconds capped at 24h. Travel time is work minus visit, floored
// at zero; when the session source under-reports, travel reads zero rather
// than negative. Percentages divide by the row count and are zero for an
// empty set.
func ComputeTotals(rows []VisitFacts, sessions []SessionRow, w Window) Totals {
	t := Totals{Total: len(rows)}

	owners := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if id := audience.NormalizeID(row.OwnerID); id != "" {
			owners[id] = struct{}{}
		}

		switch DeriveVisitStatus(row) {
		case VisitFinished:
			t.Finished++
		case VisitEnded:
			t.Ended++
		default:
			t.Pending++
		}

		if row.StartedAt != nil && row.FinishedAt != nil {
			t.VisitSeconds += clippedSeconds(*row.StartedAt, *row.FinishedAt, w)
		}
	}

	perUser := make(map[string]int64, len(owners))
	for _, s := range sessions {
		id := audience.NormalizeID(s.UserID)
		if _, ok := owners[id]; !ok {
			continue
		}
		perUser[id] += clippedSeconds(s.LoginAt, s.EndAt, w)
	}
	for _, seconds := range perUser {
		if seconds > maxDailySessionSeconds {
			seconds = maxDailySessionSeconds
		}
		t.WorkSeconds += seconds
	}

	if t.WorkSeconds > t.VisitSeconds {
		t.TravelSeconds = t.WorkSeconds - t.VisitSeconds
	}

	if t.Total > 0 {
		t.FinishedPct = float64(t.Finished) / float64(t.Total) * 100
		t.EndedPct = float64(t.Ended) / float64(t.Total) * 100
		t.PendingPct = float64(t.Pending) / float64(t.Total) * 100
	}
	return t
}
