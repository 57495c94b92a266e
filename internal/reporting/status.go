// Package reporting derives visit and broadcast statuses, applies list
// filters, and rolls filtered rows up into the KPI totals shown on the
// dashboard. Like internal/audience it is pure: all inputs arrive as
// immutable snapshots and no function here touches the network or database.
package reporting

import (
	"strings"
	"time"
)

// VisitStatus is the derived state of a visit snapshot row. It is computed
// from raw row fields on every read and never stored; stored status columns
// go stale relative to reason and timestamp data.
type VisitStatus string

const (
	VisitPending  VisitStatus = "pending"
	VisitFinished VisitStatus = "finished"
	VisitEnded    VisitStatus = "ended"
)

// VisitFacts is the projection of a visit row that derivation, filtering
// and aggregation need. Ref carries the source row identifier so callers
// can map representatives back to full rows.
type VisitFacts struct {
	Ref          string
	OwnerID      string
	TeamLeaderID string

	MarketID string
	Store    string
	Branch   string
	City     string
	Region   string

	StartedAt  *time.Time
	FinishedAt *time.Time

	EndReasonAr string
	EndReasonEn string

	// JourneyPlanState is the precomputed in/out-of-route tag, empty when
	// the snapshot job did not set one.
	JourneyPlanState string
}

// DeriveVisitStatus computes the row status.
//
// Precedence: a non-empty end reason (either locale, after trimming) makes
// the visit Ended regardless of timestamps; otherwise both timestamps
// present means Finished; anything else is Pending.
func DeriveVisitStatus(f VisitFacts) VisitStatus {
	if strings.TrimSpace(f.EndReasonAr) != "" || strings.TrimSpace(f.EndReasonEn) != "" {
		return VisitEnded
	}
	if f.StartedAt != nil && f.FinishedAt != nil {
		return VisitFinished
	}
	return VisitPending
}

// MarketKey identifies the physical market a row describes: the market id
// when the snapshot carries one, else a composite of the location fields.
func MarketKey(f VisitFacts) string {
	if key := strings.TrimSpace(f.MarketID); key != "" {
		return strings.ToLower(key)
	}
	return strings.ToLower(strings.Join([]string{f.Store, f.Branch, f.City, f.Region}, "|"))
}

// statusTier orders candidate rows within a market group. Finished beats
// Ended beats Pending; a completed visit is always the better
// representative of the day even when an abandoned attempt came later.
func statusTier(s VisitStatus) int {
	switch s {
	case VisitFinished:
		return 2
	case VisitEnded:
		return 1
	default:
		return 0
	}
}

// recency is the comparison timestamp within a tier: finished time when
// present, else start time, else the zero time.
func recency(f VisitFacts) time.Time {
	if f.FinishedAt != nil {
		return *f.FinishedAt
	}
	if f.StartedAt != nil {
		return *f.StartedAt
	}
	return time.Time{}
}

// BestByMarket collapses a day's snapshot rows to one representative row
// per market. The snapshot job can emit several rows for the same physical
// visit; the representative is the highest status tier, latest within the
// tier. Input order of distinct markets is preserved.
func BestByMarket(rows []VisitFacts) []VisitFacts {
	best := make(map[string]VisitFacts, len(rows))
	order := make([]string, 0, len(rows))

	for _, row := range rows {
		key := MarketKey(row)
		current, ok := best[key]
		if !ok {
			best[key] = row
			order = append(order, key)
			continue
		}
		rowTier, curTier := statusTier(DeriveVisitStatus(row)), statusTier(DeriveVisitStatus(current))
		if rowTier > curTier || (rowTier == curTier && recency(row).After(recency(current))) {
			best[key] = row
		}
	}

	out := make([]VisitFacts, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	return out
}
