package domain

import (
	"time"

	"github.com/google/uuid"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// PaginatedResponse wraps list payloads with paging metadata.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// RosterEntryDTO is one selectable recipient in the broadcast composer.
type RosterEntryDTO struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	NameAr       string `json:"nameAr,omitempty"`
	Role         string `json:"role"`
	RoleLabel    string `json:"roleLabel"`
	RoleLabelAr  string `json:"roleLabelAr"`
	TeamLeaderID string `json:"teamLeaderId,omitempty"`
	IsActive     bool   `json:"isActive"`
}

// SendBroadcastRequest is the compose-and-send payload. Exactly one
// targeting mode is expected; when several are supplied the resolver's
// precedence applies.
type SendBroadcastRequest struct {
	TitleEn   string `json:"titleEn" validate:"required,max=200"`
	TitleAr   string `json:"titleAr" validate:"max=200"`
	MessageEn string `json:"messageEn" validate:"required,max=2000"`
	MessageAr string `json:"messageAr" validate:"max=2000"`

	TargetUserIDs []string `json:"targetUserIds" validate:"max=5000,dive,max=100"`
	TargetRoles   []string `json:"targetRoles" validate:"max=20,dive,max=100"`
	ForAll        bool     `json:"forAll"`
}

// BroadcastDTO is one row of the sent-notification analytics list.
type BroadcastDTO struct {
	ID          uuid.UUID `json:"id"`
	SenderID    string    `json:"senderId,omitempty"` // empty means system-sent
	SenderName  string    `json:"senderName,omitempty"`
	TitleEn     string    `json:"titleEn"`
	TitleAr     string    `json:"titleAr,omitempty"`
	MessageEn   string    `json:"messageEn"`
	MessageAr   string    `json:"messageAr,omitempty"`
	TargetMode  string    `json:"targetMode"` // users | roles | all
	TargetRoles []string  `json:"targetRoles,omitempty"`

	AudienceSize   int    `json:"audienceSize"`
	CompletedCount int    `json:"completedCount"`
	FullyDone      bool   `json:"fullyDone"`
	ReadCount      int    `json:"readCount"`
	ActionCount    int    `json:"actionCount"`
	DisplayStatus  string `json:"displayStatus"` // queued | read | actioned

	// TimeTaken is the formatted delta from send to full completion, empty
	// until the broadcast is fully done.
	TimeTaken string `json:"timeTaken,omitempty"`

	HasAttachment bool   `json:"hasAttachment"`
	CreatedAt     string `json:"createdAt"` // ISO 8601
	CompletedAt   string `json:"completedAt,omitempty"`
}

// RecipientDTO is one recipient's delivery state within a broadcast.
// Name falls back to the raw identifier when the roster no longer carries
// the user.
type RecipientDTO struct {
	UserID     string `json:"userId"`
	Name       string `json:"name"`
	RoleLabel  string `json:"roleLabel"`
	Read       bool   `json:"read"`
	Actioned   bool   `json:"actioned"`
	ReadDelta  string `json:"readDelta,omitempty"`
	ActionTime string `json:"actionTime,omitempty"`
}

// BroadcastDetailDTO is a broadcast with its per-recipient breakdown.
type BroadcastDetailDTO struct {
	BroadcastDTO
	Recipients []RecipientDTO `json:"recipients"`
}

// VisitRequestDTO is one off-route request row for the decision list.
type VisitRequestDTO struct {
	ID            uuid.UUID `json:"id"`
	RequesterID   string    `json:"requesterId"`
	RequesterName string    `json:"requesterName"`
	RoleLabel     string    `json:"roleLabel"`
	MarketID      string    `json:"marketId,omitempty"`
	Store         string    `json:"store,omitempty"`
	City          string    `json:"city,omitempty"`
	Region        string    `json:"region,omitempty"`
	Status        string    `json:"status"`
	RequestedAt   string    `json:"requestedAt"`
	DecidedAt     string    `json:"decidedAt,omitempty"`
	DecidedByID   string    `json:"decidedById,omitempty"`
	DecisionNote  string    `json:"decisionNote,omitempty"`
	WaitTime      string    `json:"waitTime"` // formatted, derived for pending rows
}

// DecideVisitRequestRequest carries an optional note with a decision.
type DecideVisitRequestRequest struct {
	Note string `json:"note" validate:"max=500"`
}

// VisitRowDTO is one representative visit in the yesterday report.
type VisitRowDTO struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       string    `json:"ownerId"`
	OwnerName     string    `json:"ownerName"`
	RoleLabel     string    `json:"roleLabel"`
	TeamLeaderID  string    `json:"teamLeaderId,omitempty"`
	MarketID      string    `json:"marketId,omitempty"`
	Store         string    `json:"store,omitempty"`
	Branch        string    `json:"branch,omitempty"`
	City          string    `json:"city,omitempty"`
	Region        string    `json:"region,omitempty"`
	Status        string    `json:"status"` // pending | finished | ended
	EndReason     string    `json:"endReason,omitempty"`
	StartedAt     string    `json:"startedAt,omitempty"`
	FinishedAt    string    `json:"finishedAt,omitempty"`
	VisitDuration string    `json:"visitDuration,omitempty"`
	JourneyPlan   string    `json:"journeyPlan,omitempty"`
}

// VisitReportDTO is the yesterday-visits page payload: representative rows
// plus the KPI summary cards.
type VisitReportDTO struct {
	Date   string        `json:"date"` // YYYY-MM-DD
	Rows   []VisitRowDTO `json:"rows"`
	Totals TotalsDTO     `json:"totals"`
}

// TotalsDTO is the KPI card block.
type TotalsDTO struct {
	VisitTime  string `json:"visitTime"`
	WorkTime   string `json:"workTime"`
	TravelTime string `json:"travelTime"`

	Total    int `json:"total"`
	Finished int `json:"finished"`
	Ended    int `json:"ended"`
	Pending  int `json:"pending"`

	FinishedPct float64 `json:"finishedPct"`
	EndedPct    float64 `json:"endedPct"`
	PendingPct  float64 `json:"pendingPct"`
}

// FormatTime renders a nullable timestamp as ISO 8601, empty for nil.
func FormatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04:05Z")
}
