package service

import (
	"testing"
	"time"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/domain"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/reporting"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }

func TestYesterday(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), Yesterday(now))

	// Month boundary
	first := time.Date(2026, 3, 1, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), Yesterday(first))

	// Non-UTC input normalizes to UTC
	local := time.Date(2026, 3, 10, 1, 0, 0, 0, time.FixedZone("AST", 3*3600))
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), Yesterday(local))
}

func TestWaitTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("decided request uses the stamped wait", func(t *testing.T) {
		request := &domain.VisitRequest{
			RequestedAt: now.Add(-48 * time.Hour),
			WaitSeconds: int64Ptr(7200),
		}
		assert.Equal(t, "2h 0m", waitTime(request, now))
	})

	t.Run("pending request derives against now", func(t *testing.T) {
		request := &domain.VisitRequest{RequestedAt: now.Add(-90 * time.Second)}
		assert.Equal(t, "1m 30s", waitTime(request, now))
	})

	t.Run("future request clamps to zero", func(t *testing.T) {
		request := &domain.VisitRequest{RequestedAt: now.Add(time.Hour)}
		assert.Equal(t, "0s", waitTime(request, now))
	})
}

func TestRequestPlace(t *testing.T) {
	tests := []struct {
		name     string
		request  domain.VisitRequest
		expected string
	}{
		{
			name:     "store wins",
			request:  domain.VisitRequest{Store: "HyperMart", MarketID: "mkt-9", City: "Riyadh"},
			expected: "HyperMart",
		},
		{
			name:     "market id next",
			request:  domain.VisitRequest{MarketID: "mkt-9", City: "Riyadh"},
			expected: "mkt-9",
		},
		{
			name:     "city next",
			request:  domain.VisitRequest{City: "Riyadh"},
			expected: "Riyadh",
		},
		{
			name:     "placeholder when nothing is set",
			request:  domain.VisitRequest{},
			expected: "the requested market",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, requestPlace(&tt.request))
		})
	}
}

func TestIsUnfiltered(t *testing.T) {
	assert.True(t, isUnfiltered(reporting.VisitFilter{}))
	assert.False(t, isUnfiltered(reporting.VisitFilter{Region: "Central"}))
	assert.False(t, isUnfiltered(reporting.VisitFilter{Status: reporting.VisitFinished}))

	from := time.Now()
	assert.False(t, isUnfiltered(reporting.VisitFilter{DateFrom: &from}))
}

func TestVisitFacts(t *testing.T) {
	started := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	visit := &domain.Visit{
		OwnerID:          "user-1",
		TeamLeaderID:     strPtr("tl-1"),
		MarketID:         "mkt-9",
		Store:            "HyperMart",
		City:             "Riyadh",
		Region:           "Central",
		StartedAt:        &started,
		EndReasonEn:      "store closed",
		JourneyPlanState: "in_route",
	}

	facts := visitFacts(visit)

	assert.Equal(t, visit.ID.String(), facts.Ref)
	assert.Equal(t, "user-1", facts.OwnerID)
	assert.Equal(t, "tl-1", facts.TeamLeaderID)
	assert.Equal(t, "mkt-9", facts.MarketID)
	assert.Equal(t, &started, facts.StartedAt)
	assert.Nil(t, facts.FinishedAt)
	assert.Equal(t, "store closed", facts.EndReasonEn)
	assert.Equal(t, "in_route", facts.JourneyPlanState)
}

func TestVisitFacts_NilTeamLeader(t *testing.T) {
	facts := visitFacts(&domain.Visit{OwnerID: "user-1"})
	assert.Empty(t, facts.TeamLeaderID)
}

func TestTargetSpecOf(t *testing.T) {
	n := &domain.Notification{
		TargetUserID:  strPtr("user-1"),
		TargetUserIDs: pq.StringArray{"user-2"},
		TargetRoles:   pq.StringArray{"promoter"},
		ForAll:        true,
	}

	spec := targetSpecOf(n)

	assert.Equal(t, "user-1", spec.UserID)
	assert.Equal(t, []string{"user-2"}, []string(spec.UserIDs))
	assert.Equal(t, []string{"promoter"}, []string(spec.Roles))
	assert.True(t, spec.ForAll)
}

func TestAckIDs(t *testing.T) {
	now := time.Now()
	receipts := []domain.NotificationReceipt{
		{UserID: "user-1", ReadAt: &now},
		{UserID: "user-2", ActionedAt: &now},
		{UserID: "user-3"},
		{UserID: "user-4", ReadAt: &now, ActionedAt: &now},
	}

	assert.Equal(t, []string{"user-1", "user-2", "user-4"}, ackIDs(receipts))
	assert.Empty(t, ackIDs(nil))
}

func TestDisplayNameOrID(t *testing.T) {
	byID := map[string]*domain.User{
		"user-1": {ID: "User-1", Username: "jfield", FirstNameEn: "Jane", LastNameEn: "Field", Role: "promoter"},
	}

	t.Run("known user", func(t *testing.T) {
		name, roleLabel := displayNameOrID(byID, "USER-1")
		assert.Equal(t, "Jane Field", name)
		assert.Equal(t, "Promoter", roleLabel)
	})

	t.Run("departed user falls back to raw id", func(t *testing.T) {
		name, roleLabel := displayNameOrID(byID, "user-gone")
		assert.Equal(t, "user-gone", name)
		assert.Equal(t, "-", roleLabel)
	})
}
