package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Tenant is an isolated client company. All roster, notification and visit
// rows are scoped by tenant id; isolation is enforced by the tenant filter
// middleware plus the repository helpers.
type Tenant struct {
	ID        string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	IsActive  bool      `gorm:"not null;default:true;column:is_active" json:"isActive"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// User is one roster entry: a field-staff or admin account linked to a
// tenant. Role stays the raw backend string; classification happens at
// read time in internal/audience.
type User struct {
	ID           string  `gorm:"type:varchar(100);primaryKey"`
	TenantID     string  `gorm:"type:varchar(50);not null;index;column:tenant_id"`
	Username     string  `gorm:"type:varchar(100);not null"`
	FirstNameEn  string  `gorm:"type:varchar(100);column:first_name_en"`
	LastNameEn   string  `gorm:"type:varchar(100);column:last_name_en"`
	FirstNameAr  string  `gorm:"type:varchar(100);column:first_name_ar"`
	LastNameAr   string  `gorm:"type:varchar(100);column:last_name_ar"`
	Role         string  `gorm:"type:varchar(100);index"`
	TeamLeaderID *string `gorm:"type:varchar(100);column:team_leader_id"`
	IsActive     bool    `gorm:"not null;default:true;column:is_active;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName returns the user's name in the requested locale, falling
// back to the other locale and finally to the username.
func (u *User) DisplayName(arabic bool) string {
	ar := joinName(u.FirstNameAr, u.LastNameAr)
	en := joinName(u.FirstNameEn, u.LastNameEn)
	if arabic {
		if ar != "" {
			return ar
		}
		if en != "" {
			return en
		}
	} else {
		if en != "" {
			return en
		}
		if ar != "" {
			return ar
		}
	}
	return u.Username
}

func joinName(first, last string) string {
	switch {
	case first == "" && last == "":
		return ""
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

// Notification is one sent broadcast. Targeting fields mirror what the
// composer submitted; at most one of them is meaningful and resolution
// precedence is explicit user(s), then roles, then the for-all flag.
// CompletedAt is tenant-wide, not per recipient.
type Notification struct {
	BaseModel
	TenantID string  `gorm:"type:varchar(50);not null;index;column:tenant_id"`
	SenderID *string `gorm:"type:varchar(100);column:sender_id"` // nil means system-sent

	TitleEn   string `gorm:"type:varchar(200);not null;column:title_en"`
	TitleAr   string `gorm:"type:varchar(200);column:title_ar"`
	MessageEn string `gorm:"type:varchar(2000);not null;column:message_en"`
	MessageAr string `gorm:"type:varchar(2000);column:message_ar"`

	TargetUserID  *string        `gorm:"type:varchar(100);column:target_user_id"`
	TargetUserIDs pq.StringArray `gorm:"type:text[];column:target_user_ids"`
	TargetRoles   pq.StringArray `gorm:"type:text[];column:target_roles"`
	ForAll        bool           `gorm:"not null;default:false;column:for_all"`

	AttachmentPath string `gorm:"type:varchar(500);column:attachment_path"`

	// AudienceSize is resolved once at send time against that day's roster
	AudienceSize int `gorm:"not null;default:0;column:audience_size"`

	CompletedAt *time.Time `gorm:"column:completed_at"`

	Receipts []NotificationReceipt `gorm:"foreignKey:NotificationID;constraint:OnDelete:CASCADE"`
}

// NotificationReceipt records one recipient's acknowledgement of a
// broadcast. Rows are created when the field app first reports a read or
// an action; recipients without a receipt are still queued.
type NotificationReceipt struct {
	BaseModel
	NotificationID uuid.UUID  `gorm:"type:uuid;not null;index;column:notification_id"`
	UserID         string     `gorm:"type:varchar(100);not null;index;column:user_id"`
	ReadAt         *time.Time `gorm:"column:read_at"`
	ActionedAt     *time.Time `gorm:"column:actioned_at"`
}

// Visit is one row of the nightly visit snapshot. Status is never stored;
// it is derived from the reason and timestamp fields on every read.
type Visit struct {
	BaseModel
	TenantID     string  `gorm:"type:varchar(50);not null;index;column:tenant_id"`
	OwnerID      string  `gorm:"type:varchar(100);not null;index;column:owner_id"`
	TeamLeaderID *string `gorm:"type:varchar(100);column:team_leader_id;index"`

	MarketID string `gorm:"type:varchar(100);column:market_id;index"`
	Store    string `gorm:"type:varchar(200)"`
	Branch   string `gorm:"type:varchar(200)"`
	City     string `gorm:"type:varchar(100);index"`
	Region   string `gorm:"type:varchar(100);index"`

	StartedAt  *time.Time `gorm:"column:started_at"`
	FinishedAt *time.Time `gorm:"column:finished_at"`

	EndReasonEn string `gorm:"type:varchar(500);column:end_reason_en"`
	EndReasonAr string `gorm:"type:varchar(500);column:end_reason_ar"`

	// JourneyPlanState is the snapshot job's in/out-of-route tag, empty
	// when not computed.
	JourneyPlanState string `gorm:"type:varchar(50);column:journey_plan_state"`

	SnapshotDate time.Time `gorm:"type:date;not null;index;column:snapshot_date"`
}

// VisitRequestStatus is the lifecycle state of an off-route request.
// Unlike visit status it is stored: approval and rejection are decisions
// made in this system, not derived facts.
type VisitRequestStatus string

const (
	RequestPending   VisitRequestStatus = "pending"
	RequestApproved  VisitRequestStatus = "approved"
	RequestRejected  VisitRequestStatus = "rejected"
	RequestCancelled VisitRequestStatus = "cancelled"
	RequestExpired   VisitRequestStatus = "expired"
)

// VisitRequest is a field user's request to visit a market outside their
// planned route.
type VisitRequest struct {
	BaseModel
	TenantID    string `gorm:"type:varchar(50);not null;index;column:tenant_id"`
	RequesterID string `gorm:"type:varchar(100);not null;index;column:requester_id"`
	MarketID    string `gorm:"type:varchar(100);column:market_id"`
	Store       string `gorm:"type:varchar(200)"`
	City        string `gorm:"type:varchar(100)"`
	Region      string `gorm:"type:varchar(100)"`

	Status       VisitRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	RequestedAt  time.Time          `gorm:"not null;column:requested_at"`
	DecidedAt    *time.Time         `gorm:"column:decided_at"`
	DecidedByID  *string            `gorm:"type:varchar(100);column:decided_by_id"`
	DecisionNote string             `gorm:"type:varchar(500);column:decision_note"`

	// WaitSeconds is stamped when the request is decided; for pending rows
	// the wait is derived against now at read time.
	WaitSeconds *int64 `gorm:"column:wait_seconds"`
}
