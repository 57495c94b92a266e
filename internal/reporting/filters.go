package reporting

import (
	"time"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/audience"
)

// Filter semantics shared by both appliers: every populated field is an
// independent predicate and the result is their conjunction. An empty or
// zero field contributes no constraint, so predicates may run in any order.

// sameOrAfterDay reports ts >= day, comparing at day granularity.
func sameOrAfterDay(ts, day time.Time) bool {
	return !truncateDay(ts).Before(truncateDay(day))
}

// sameOrBeforeDay reports ts <= day, comparing at day granularity.
func sameOrBeforeDay(ts, day time.Time) bool {
	return !truncateDay(ts).After(truncateDay(day))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func inDateRange(ts time.Time, from, to *time.Time) bool {
	if from != nil && !sameOrAfterDay(ts, *from) {
		return false
	}
	if to != nil && !sameOrBeforeDay(ts, *to) {
		return false
	}
	return true
}

// VisitFilter narrows a visit row set. Empty string fields and nil dates
// mean "no constraint". Date bounds are inclusive and Status compares the
// derived status, never a stored column.
type VisitFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time

	Status       VisitStatus
	Region       string
	City         string
	Market       string
	TeamLeaderID string
	OwnerID      string

	JourneyPlanState string
}

// visitDate is the timestamp a date-range predicate compares against:
// start time when present, else finish time.
func visitDate(f VisitFacts) (time.Time, bool) {
	if f.StartedAt != nil {
		return *f.StartedAt, true
	}
	if f.FinishedAt != nil {
		return *f.FinishedAt, true
	}
	return time.Time{}, false
}

// ApplyVisitFilter returns the rows satisfying every populated predicate.
func ApplyVisitFilter(rows []VisitFacts, filter VisitFilter) []VisitFacts {
	out := make([]VisitFacts, 0, len(rows))
	for _, row := range rows {
		if !matchVisit(row, filter) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func matchVisit(row VisitFacts, f VisitFilter) bool {
	if f.DateFrom != nil || f.DateTo != nil {
		ts, ok := visitDate(row)
		if !ok || !inDateRange(ts, f.DateFrom, f.DateTo) {
			return false
		}
	}
	if f.Status != "" && DeriveVisitStatus(row) != f.Status {
		return false
	}
	if f.Region != "" && audience.NormalizeID(row.Region) != audience.NormalizeID(f.Region) {
		return false
	}
	if f.City != "" && audience.NormalizeID(row.City) != audience.NormalizeID(f.City) {
		return false
	}
	if f.Market != "" && MarketKey(row) != audience.NormalizeID(f.Market) {
		return false
	}
	if f.TeamLeaderID != "" && audience.NormalizeID(row.TeamLeaderID) != audience.NormalizeID(f.TeamLeaderID) {
		return false
	}
	if f.OwnerID != "" && audience.NormalizeID(row.OwnerID) != audience.NormalizeID(f.OwnerID) {
		return false
	}
	if f.JourneyPlanState != "" && audience.NormalizeID(row.JourneyPlanState) != audience.NormalizeID(f.JourneyPlanState) {
		return false
	}
	return true
}

// BroadcastFacts is the projection of one sent notification that filtering
// and status derivation need.
type BroadcastFacts struct {
	Ref         string
	SenderID    string // empty means system-sent
	CreatedAt   time.Time
	Target      audience.TargetSpec
	ReadCount   int
	ActionCount int
}

// SenderType values for BroadcastFilter.
const (
	SenderSystem = "system"
	SenderNamed  = "named"
)

// BroadcastFilter narrows a sent-notification list.
type BroadcastFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time

	// SenderType is "system" (no sender id) or "named"; empty means both.
	SenderType string
	SenderID   string

	// RecipientRole and RecipientID ask "would this broadcast have reached
	// this role / this person", using the same audience semantics the
	// resolver applies.
	RecipientRole string
	RecipientID   string

	Status DisplayStatus
}

// ApplyBroadcastFilter returns the broadcasts satisfying every populated
// predicate. The roster is needed by the recipient predicates: a broadcast
// targeted at roles reaches a named person only when that person's roster
// role is among the targeted roles, and a broadcast with an explicit user
// list reaches a role only when one of the listed users resolves to it.
func ApplyBroadcastFilter(rows []BroadcastFacts, filter BroadcastFilter, roster []audience.Member) []BroadcastFacts {
	roleByID := make(map[string]string, len(roster))
	for _, m := range roster {
		roleByID[audience.NormalizeID(m.ID)] = m.Role
	}

	out := make([]BroadcastFacts, 0, len(rows))
	for _, row := range rows {
		if !matchBroadcast(row, filter, roster, roleByID) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func matchBroadcast(row BroadcastFacts, f BroadcastFilter, roster []audience.Member, roleByID map[string]string) bool {
	if !inDateRange(row.CreatedAt, f.DateFrom, f.DateTo) {
		return false
	}
	switch f.SenderType {
	case SenderSystem:
		if row.SenderID != "" {
			return false
		}
	case SenderNamed:
		if row.SenderID == "" {
			return false
		}
	}
	if f.SenderID != "" && audience.NormalizeID(row.SenderID) != audience.NormalizeID(f.SenderID) {
		return false
	}
	if f.RecipientRole != "" && !reachesRole(row.Target, f.RecipientRole, roleByID) {
		return false
	}
	if f.RecipientID != "" && !reachesUser(row.Target, f.RecipientID, roster) {
		return false
	}
	if f.Status != "" && DeriveDisplayStatus(row.ReadCount, row.ActionCount) != f.Status {
		return false
	}
	return true
}

// reachesRole reports whether a broadcast's targeting covers the given
// role: for-all covers every role, a role list covers matching roles, and
// an explicit user list covers the resolved roles of the listed users.
// Matching follows targeting resolution: family roles match as families,
// roles outside every family fall back to exact normalized equality.
func reachesRole(target audience.TargetSpec, role string, roleByID map[string]string) bool {
	explicit := target.UserIDs
	if target.UserID != "" {
		explicit = append([]string{target.UserID}, explicit...)
	}
	if ids := audience.NormalizeIDs(explicit); len(ids) > 0 {
		for _, id := range ids {
			if memberRole, ok := roleByID[id]; ok && audience.MatchesRole(memberRole, role) {
				return true
			}
		}
		return false
	}
	if len(target.Roles) > 0 {
		for _, r := range target.Roles {
			if audience.MatchesRole(r, role) {
				return true
			}
		}
		return false
	}
	return target.ForAll
}

// reachesUser reports whether the broadcast's resolved audience contains
// the given user.
func reachesUser(target audience.TargetSpec, userID string, roster []audience.Member) bool {
	id := audience.NormalizeID(userID)
	if id == "" {
		return false
	}
	_, ok := audience.Resolve(target, roster)[id]
	return ok
}
