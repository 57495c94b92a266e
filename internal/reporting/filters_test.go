package reporting_test

import (
	"testing"
	"time"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/audience"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/reporting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleVisits() []reporting.VisitFacts {
	return []reporting.VisitFacts{
		{
			Ref:          "v1",
			OwnerID:      "u1",
			TeamLeaderID: "tl1",
			Region:       "Central",
			City:         "Riyadh",
			MarketID:     "m1",
			StartedAt:    tptr(day.Add(9 * time.Hour)),
			FinishedAt:   tptr(day.Add(10 * time.Hour)),
		},
		{
			Ref:          "v2",
			OwnerID:      "u2",
			TeamLeaderID: "tl2",
			Region:       "Western",
			City:         "Jeddah",
			MarketID:     "m2",
			StartedAt:    tptr(day.Add(26 * time.Hour)), // next day
		},
		{
			Ref:         "v3",
			OwnerID:     "u1",
			TeamLeaderID: "tl1",
			Region:      "Central",
			City:        "Riyadh",
			MarketID:    "m3",
			EndReasonEn: "Store closed",
			StartedAt:   tptr(day.Add(11 * time.Hour)),
		},
	}
}

func refs(rows []reporting.VisitFacts) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Ref)
	}
	return out
}

func TestApplyVisitFilter(t *testing.T) {
	t.Run("empty filter keeps everything", func(t *testing.T) {
		got := reporting.ApplyVisitFilter(sampleVisits(), reporting.VisitFilter{})
		assert.Len(t, got, 3)
	})

	t.Run("date range is inclusive at day granularity", func(t *testing.T) {
		from, to := day, day
		got := reporting.ApplyVisitFilter(sampleVisits(), reporting.VisitFilter{DateFrom: &from, DateTo: &to})
		assert.ElementsMatch(t, []string{"v1", "v3"}, refs(got))
	})

	t.Run("status compares the derived status", func(t *testing.T) {
		got := reporting.ApplyVisitFilter(sampleVisits(), reporting.VisitFilter{Status: reporting.VisitEnded})
		assert.ElementsMatch(t, []string{"v3"}, refs(got))
	})

	t.Run("region and team leader conjoin", func(t *testing.T) {
		got := reporting.ApplyVisitFilter(sampleVisits(), reporting.VisitFilter{
			Region:       "central",
			TeamLeaderID: "TL1",
			Status:       reporting.VisitFinished,
		})
		assert.ElementsMatch(t, []string{"v1"}, refs(got))
	})

	t.Run("conjunction equals sequential intersection", func(t *testing.T) {
		from, to := day, day

		both := reporting.ApplyVisitFilter(sampleVisits(), reporting.VisitFilter{DateFrom: &from, DateTo: &to})
		fromOnly := reporting.ApplyVisitFilter(sampleVisits(), reporting.VisitFilter{DateFrom: &from})
		sequential := reporting.ApplyVisitFilter(fromOnly, reporting.VisitFilter{DateTo: &to})

		assert.ElementsMatch(t, refs(both), refs(sequential))
	})
}

func sampleBroadcasts() []reporting.BroadcastFacts {
	return []reporting.BroadcastFacts{
		{
			Ref:       "b-all",
			SenderID:  "",
			CreatedAt: day.Add(8 * time.Hour),
			Target:    audience.TargetSpec{ForAll: true},
		},
		{
			Ref:         "b-role",
			SenderID:    "admin1",
			CreatedAt:   day.Add(9 * time.Hour),
			Target:      audience.TargetSpec{Roles: []string{"team_leader"}},
			ReadCount:   1,
			ActionCount: 0,
		},
		{
			Ref:         "b-explicit",
			SenderID:    "admin2",
			CreatedAt:   day.Add(10 * time.Hour),
			Target:      audience.TargetSpec{UserIDs: []string{"u1", "u2"}},
			ReadCount:   2,
			ActionCount: 1,
		},
	}
}

func broadcastRoster() []audience.Member {
	return []audience.Member{
		{ID: "u1", Role: "promoter", Active: true},
		{ID: "u2", Role: "team_leader", Active: true},
	}
}

func broadcastRefs(rows []reporting.BroadcastFacts) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Ref)
	}
	return out
}

func TestApplyBroadcastFilter(t *testing.T) {
	t.Run("sender type system means nil sender", func(t *testing.T) {
		got := reporting.ApplyBroadcastFilter(sampleBroadcasts(), reporting.BroadcastFilter{SenderType: reporting.SenderSystem}, broadcastRoster())
		assert.ElementsMatch(t, []string{"b-all"}, broadcastRefs(got))
	})

	t.Run("for-all rows match every recipient filter", func(t *testing.T) {
		got := reporting.ApplyBroadcastFilter(sampleBroadcasts(), reporting.BroadcastFilter{RecipientRole: "merchandiser"}, broadcastRoster())
		assert.Contains(t, broadcastRefs(got), "b-all")
	})

	t.Run("role-targeted rows match a person only through their role", func(t *testing.T) {
		got := reporting.ApplyBroadcastFilter(sampleBroadcasts(), reporting.BroadcastFilter{RecipientID: "u2"}, broadcastRoster())
		assert.ElementsMatch(t, []string{"b-all", "b-role", "b-explicit"}, broadcastRefs(got))

		got = reporting.ApplyBroadcastFilter(sampleBroadcasts(), reporting.BroadcastFilter{RecipientID: "u1"}, broadcastRoster())
		assert.ElementsMatch(t, []string{"b-all", "b-explicit"}, broadcastRefs(got))
	})

	t.Run("explicit rows match a role filter through the listed users' roles", func(t *testing.T) {
		got := reporting.ApplyBroadcastFilter(sampleBroadcasts(), reporting.BroadcastFilter{RecipientRole: "promoter"}, broadcastRoster())
		assert.ElementsMatch(t, []string{"b-all", "b-explicit"}, broadcastRefs(got))
	})

	t.Run("distinct out-of-family roles never match each other", func(t *testing.T) {
		rows := []reporting.BroadcastFacts{
			{Ref: "b-driver-role", Target: audience.TargetSpec{Roles: []string{"driver"}}},
			{Ref: "b-driver-user", Target: audience.TargetSpec{UserIDs: []string{"u3"}}},
		}
		roster := []audience.Member{{ID: "u3", Role: "driver", Active: true}}

		got := reporting.ApplyBroadcastFilter(rows, reporting.BroadcastFilter{RecipientRole: "pilot"}, roster)
		assert.Empty(t, broadcastRefs(got))

		got = reporting.ApplyBroadcastFilter(rows, reporting.BroadcastFilter{RecipientRole: "driver"}, roster)
		assert.ElementsMatch(t, []string{"b-driver-role", "b-driver-user"}, broadcastRefs(got))
	})

	t.Run("role lists match family synonyms", func(t *testing.T) {
		rows := []reporting.BroadcastFacts{
			{Ref: "b-promoplus", Target: audience.TargetSpec{Roles: []string{"promoplus"}}},
		}
		got := reporting.ApplyBroadcastFilter(rows, reporting.BroadcastFilter{RecipientRole: "promoter"}, nil)
		assert.ElementsMatch(t, []string{"b-promoplus"}, broadcastRefs(got))
	})

	t.Run("status uses read and action counts", func(t *testing.T) {
		got := reporting.ApplyBroadcastFilter(sampleBroadcasts(), reporting.BroadcastFilter{Status: reporting.StatusActioned}, broadcastRoster())
		require.Len(t, got, 1)
		assert.Equal(t, "b-explicit", got[0].Ref)
	})
}
