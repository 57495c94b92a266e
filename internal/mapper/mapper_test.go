package mapper_test

import (
	"testing"
	"time"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/domain"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/mapper"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/reporting"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestTargetMode(t *testing.T) {
	tests := []struct {
		name         string
		notification domain.Notification
		expected     string
	}{
		{
			name:         "single explicit user",
			notification: domain.Notification{TargetUserID: strPtr("user-1")},
			expected:     mapper.TargetModeUsers,
		},
		{
			name:         "explicit user list",
			notification: domain.Notification{TargetUserIDs: pq.StringArray{"user-1", "user-2"}},
			expected:     mapper.TargetModeUsers,
		},
		{
			name: "explicit users win over roles",
			notification: domain.Notification{
				TargetUserIDs: pq.StringArray{"user-1"},
				TargetRoles:   pq.StringArray{"promoter"},
				ForAll:        true,
			},
			expected: mapper.TargetModeUsers,
		},
		{
			name:         "roles win over for-all",
			notification: domain.Notification{TargetRoles: pq.StringArray{"promoter"}, ForAll: true},
			expected:     mapper.TargetModeRoles,
		},
		{
			name:         "for-all",
			notification: domain.Notification{ForAll: true},
			expected:     mapper.TargetModeAll,
		},
		{
			name:         "nothing set still reads as all",
			notification: domain.Notification{},
			expected:     mapper.TargetModeAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapper.TargetMode(&tt.notification))
		})
	}
}

func TestToRosterEntryDTO(t *testing.T) {
	user := &domain.User{
		ID:           "user-1",
		Username:     "jfield",
		FirstNameEn:  "Jane",
		LastNameEn:   "Field",
		FirstNameAr:  "جين",
		Role:         "promoter",
		TeamLeaderID: strPtr("tl-1"),
		IsActive:     true,
	}

	dto := mapper.ToRosterEntryDTO(user)

	assert.Equal(t, "user-1", dto.ID)
	assert.Equal(t, "jfield", dto.Username)
	assert.Equal(t, "Jane Field", dto.Name)
	assert.Equal(t, "جين", dto.NameAr)
	assert.Equal(t, "promoter", dto.Role)
	assert.Equal(t, "Promoter", dto.RoleLabel)
	assert.Equal(t, "مروج", dto.RoleLabelAr)
	assert.Equal(t, "tl-1", dto.TeamLeaderID)
	assert.True(t, dto.IsActive)
}

func TestToRosterEntryDTO_NameFallsBackToUsername(t *testing.T) {
	user := &domain.User{ID: "user-2", Username: "ghost", Role: "weird_new_role"}

	dto := mapper.ToRosterEntryDTO(user)

	assert.Equal(t, "ghost", dto.Name)
	assert.Equal(t, "ghost", dto.NameAr)
	// Unknown roles pass through unchanged
	assert.Equal(t, "weird_new_role", dto.RoleLabel)
	assert.Empty(t, dto.TeamLeaderID)
}

func TestToBroadcastDTO(t *testing.T) {
	created := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	completed := created.Add(90 * time.Minute)
	read := created.Add(10 * time.Minute)

	n := &domain.Notification{
		BaseModel:      domain.BaseModel{ID: uuid.New(), CreatedAt: created},
		SenderID:       strPtr("admin-1"),
		TitleEn:        "Shelf audit",
		MessageEn:      "Check all end caps today",
		TargetRoles:    pq.StringArray{"promoter"},
		AttachmentPath: "attachments/acme/file.pdf",
		CompletedAt:    &completed,
		Receipts: []domain.NotificationReceipt{
			{UserID: "user-1", ReadAt: &read},
			{UserID: "user-2", ReadAt: &read, ActionedAt: &completed},
			{UserID: "user-3"},
		},
	}

	completion := reporting.Completion{AudienceSize: 3, CompletedCount: 2, FullyDone: false}
	dto := mapper.ToBroadcastDTO(n, "Admin One", completion, reporting.StatusActioned, "1h 30m")

	assert.Equal(t, "admin-1", dto.SenderID)
	assert.Equal(t, "Admin One", dto.SenderName)
	assert.Equal(t, mapper.TargetModeRoles, dto.TargetMode)
	assert.Equal(t, 3, dto.AudienceSize)
	assert.Equal(t, 2, dto.CompletedCount)
	assert.Equal(t, 2, dto.ReadCount)
	assert.Equal(t, 1, dto.ActionCount)
	assert.Equal(t, "actioned", dto.DisplayStatus)
	assert.Equal(t, "1h 30m", dto.TimeTaken)
	assert.True(t, dto.HasAttachment)
	assert.Equal(t, "2026-03-10T08:00:00Z", dto.CreatedAt)
	assert.Equal(t, "2026-03-10T09:30:00Z", dto.CompletedAt)
}

func TestToBroadcastDTO_SystemSender(t *testing.T) {
	n := &domain.Notification{
		BaseModel: domain.BaseModel{ID: uuid.New(), CreatedAt: time.Now()},
		TitleEn:   "Visit request update",
		MessageEn: "Your request was approved",
		ForAll:    true,
	}

	dto := mapper.ToBroadcastDTO(n, "", reporting.Completion{AudienceSize: 1}, reporting.StatusQueued, "")

	assert.Empty(t, dto.SenderID)
	assert.Empty(t, dto.SenderName)
	assert.Empty(t, dto.CompletedAt)
	assert.Empty(t, dto.TimeTaken)
	assert.False(t, dto.HasAttachment)
	assert.Equal(t, "queued", dto.DisplayStatus)
}

func TestToVisitRequestDTO(t *testing.T) {
	requested := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	decided := requested.Add(2 * time.Hour)

	request := &domain.VisitRequest{
		BaseModel:    domain.BaseModel{ID: uuid.New()},
		RequesterID:  "user-1",
		MarketID:     "mkt-9",
		Store:        "HyperMart",
		City:         "Riyadh",
		Status:       domain.RequestApproved,
		RequestedAt:  requested,
		DecidedAt:    &decided,
		DecidedByID:  strPtr("admin-1"),
		DecisionNote: "approved for restock",
	}

	dto := mapper.ToVisitRequestDTO(request, "Jane Field", "Promoter", "2h 0m")

	assert.Equal(t, "user-1", dto.RequesterID)
	assert.Equal(t, "Jane Field", dto.RequesterName)
	assert.Equal(t, "Promoter", dto.RoleLabel)
	assert.Equal(t, "approved", dto.Status)
	assert.Equal(t, "2026-03-10T09:00:00Z", dto.RequestedAt)
	assert.Equal(t, "2026-03-10T11:00:00Z", dto.DecidedAt)
	assert.Equal(t, "admin-1", dto.DecidedByID)
	assert.Equal(t, "approved for restock", dto.DecisionNote)
	assert.Equal(t, "2h 0m", dto.WaitTime)
}

func TestToVisitRowDTO(t *testing.T) {
	started := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	finished := started.Add(45 * time.Minute)

	visit := &domain.Visit{
		BaseModel:        domain.BaseModel{ID: uuid.New()},
		OwnerID:          "user-1",
		TeamLeaderID:     strPtr("tl-1"),
		MarketID:         "mkt-9",
		Store:            "HyperMart",
		Branch:           "North",
		City:             "Riyadh",
		Region:           "Central",
		StartedAt:        &started,
		FinishedAt:       &finished,
		JourneyPlanState: "in_route",
	}

	dto := mapper.ToVisitRowDTO(visit, "Jane Field", "Promoter", reporting.VisitFinished, "45m", "")

	assert.Equal(t, "user-1", dto.OwnerID)
	assert.Equal(t, "Jane Field", dto.OwnerName)
	assert.Equal(t, "tl-1", dto.TeamLeaderID)
	assert.Equal(t, "finished", dto.Status)
	assert.Equal(t, "2026-03-09T10:00:00Z", dto.StartedAt)
	assert.Equal(t, "2026-03-09T10:45:00Z", dto.FinishedAt)
	assert.Equal(t, "45m", dto.VisitDuration)
	assert.Equal(t, "in_route", dto.JourneyPlan)
	assert.Empty(t, dto.EndReason)
}
