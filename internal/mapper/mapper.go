package mapper

import (
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/audience"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/domain"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/reporting"
)

// TargetModeUsers, TargetModeRoles and TargetModeAll name the three
// targeting modes in DTO payloads, in resolution precedence order.
const (
	TargetModeUsers = "users"
	TargetModeRoles = "roles"
	TargetModeAll   = "all"
)

// TargetMode reports which targeting mode governs a notification,
// mirroring audience resolution precedence.
func TargetMode(n *domain.Notification) string {
	if n.TargetUserID != nil || len(n.TargetUserIDs) > 0 {
		return TargetModeUsers
	}
	if len(n.TargetRoles) > 0 {
		return TargetModeRoles
	}
	return TargetModeAll
}

// ToRosterEntryDTO converts a User to a composer roster entry
func ToRosterEntryDTO(user *domain.User) domain.RosterEntryDTO {
	dto := domain.RosterEntryDTO{
		ID:          user.ID,
		Username:    user.Username,
		Name:        user.DisplayName(false),
		NameAr:      user.DisplayName(true),
		Role:        user.Role,
		RoleLabel:   audience.Label(user.Role, audience.LocaleEn),
		RoleLabelAr: audience.Label(user.Role, audience.LocaleAr),
		IsActive:    user.IsActive,
	}
	if user.TeamLeaderID != nil {
		dto.TeamLeaderID = *user.TeamLeaderID
	}
	return dto
}

// ToBroadcastDTO converts a Notification and its derived analytics to a list row
func ToBroadcastDTO(n *domain.Notification, senderName string, completion reporting.Completion, display reporting.DisplayStatus, timeTaken string) domain.BroadcastDTO {
	dto := domain.BroadcastDTO{
		ID:            n.ID,
		SenderName:    senderName,
		TitleEn:       n.TitleEn,
		TitleAr:       n.TitleAr,
		MessageEn:     n.MessageEn,
		MessageAr:     n.MessageAr,
		TargetMode:    TargetMode(n),
		TargetRoles:   n.TargetRoles,
		AudienceSize:  completion.AudienceSize,
		FullyDone:     completion.FullyDone,
		DisplayStatus: string(display),
		TimeTaken:     timeTaken,
		HasAttachment: n.AttachmentPath != "",
		CreatedAt:     n.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		CompletedAt:   domain.FormatTime(n.CompletedAt),
	}

	dto.CompletedCount = completion.CompletedCount

	if n.SenderID != nil {
		dto.SenderID = *n.SenderID
	}

	for _, receipt := range n.Receipts {
		if receipt.ReadAt != nil {
			dto.ReadCount++
		}
		if receipt.ActionedAt != nil {
			dto.ActionCount++
		}
	}

	return dto
}

// ToRecipientDTO converts one receipt to its delivery-state row.
// name and roleLabel come from the roster; the caller passes the raw user
// id as name when the roster no longer has the user.
func ToRecipientDTO(receipt *domain.NotificationReceipt, name, roleLabel, readDelta, actionTime string) domain.RecipientDTO {
	return domain.RecipientDTO{
		UserID:     receipt.UserID,
		Name:       name,
		RoleLabel:  roleLabel,
		Read:       receipt.ReadAt != nil,
		Actioned:   receipt.ActionedAt != nil,
		ReadDelta:  readDelta,
		ActionTime: actionTime,
	}
}

// ToVisitRequestDTO converts a VisitRequest to its decision-list row
func ToVisitRequestDTO(request *domain.VisitRequest, requesterName, roleLabel, waitTime string) domain.VisitRequestDTO {
	dto := domain.VisitRequestDTO{
		ID:            request.ID,
		RequesterID:   request.RequesterID,
		RequesterName: requesterName,
		RoleLabel:     roleLabel,
		MarketID:      request.MarketID,
		Store:         request.Store,
		City:          request.City,
		Region:        request.Region,
		Status:        string(request.Status),
		RequestedAt:   request.RequestedAt.UTC().Format("2006-01-02T15:04:05Z"),
		DecidedAt:     domain.FormatTime(request.DecidedAt),
		DecisionNote:  request.DecisionNote,
		WaitTime:      waitTime,
	}
	if request.DecidedByID != nil {
		dto.DecidedByID = *request.DecidedByID
	}
	return dto
}

// ToVisitRowDTO converts a snapshot Visit to a report row. Status and
// duration are derived by the caller; the row never stores them.
func ToVisitRowDTO(visit *domain.Visit, ownerName, roleLabel string, status reporting.VisitStatus, duration, endReason string) domain.VisitRowDTO {
	dto := domain.VisitRowDTO{
		ID:            visit.ID,
		OwnerID:       visit.OwnerID,
		OwnerName:     ownerName,
		RoleLabel:     roleLabel,
		MarketID:      visit.MarketID,
		Store:         visit.Store,
		Branch:        visit.Branch,
		City:          visit.City,
		Region:        visit.Region,
		Status:        string(status),
		EndReason:     endReason,
		StartedAt:     domain.FormatTime(visit.StartedAt),
		FinishedAt:    domain.FormatTime(visit.FinishedAt),
		VisitDuration: duration,
		JourneyPlan:   visit.JourneyPlanState,
	}
	if visit.TeamLeaderID != nil {
		dto.TeamLeaderID = *visit.TeamLeaderID
	}
	return dto
}
