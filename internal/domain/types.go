package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TicketStatus string

const (
	TicketActive  TicketStatus = "active"
	TicketUsed    TicketStatus = "used"
	TicketExpired TicketStatus = "expired"
)

type EventStatus string

const (
	EventActive    EventStatus = "active"
	EventCancelled EventStatus = "cancelled"
	EventFinished  EventStatus = "finished"
)

type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationReviewed ModerationStatus = "reviewed"
	ModerationResolved ModerationStatus = "resolved"
)

type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Province struct {
	ID           int64  `json:"id"`
	DepartmentID int64  `json:"department_id"`
	Name         string `json:"name"`
}

type District struct {
	ID         int64  `json:"id"`
	ProvinceID int64  `json:"province_id"`
	Name       string `json:"name"`
}

// RoleEntry is the catalog row behind the Role enum. Name is a display
// string and is never used for permission checks.
type RoleEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID           int64     `json:"id"`
	FirstNames   string    `json:"first_names"`
	LastNames    string    `json:"last_names"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        *string   `json:"phone,omitempty"`
	RoleID       int64     `json:"role_id"`
	Role         Role      `json:"role"`
	Gender       *string   `json:"gender,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Organizer struct {
	ID                  int64      `json:"id"`
	UserID              int64      `json:"user_id"`
	DocumentType        string     `json:"document_type"`
	DocumentNumber      string     `json:"document_number"`
	BusinessName        *string    `json:"business_name,omitempty"`
	TaxID               *string    `json:"tax_id,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	WorkCertificateFile *string    `json:"work_certificate_file,omitempty"`
	IsApproved          bool       `json:"is_approved"`
	ApprovalDate        *time.Time `json:"approval_date,omitempty"`
}

type Verifier struct {
	ID          int64 `json:"id"`
	UserID      int64 `json:"user_id"`
	OrganizerID int64 `json:"organizer_id"`
}

type Event struct {
	ID                  int64       `json:"id"`
	Title               string      `json:"title"`
	Description         *string     `json:"description,omitempty"`
	StartDate           time.Time   `json:"start_date"`
	EndDate             time.Time   `json:"end_date"`
	DistrictID          int64       `json:"district_id"`
	LocationDescription *string     `json:"location_description,omitempty"`
	CategoryID          int64       `json:"category_id"`
	OrganizerID         int64       `json:"organizer_id"`
	OrganizerUserID     int64       `json:"organizer_user_id"`
	ImageURL            *string     `json:"image_url,omitempty"`
	Status              EventStatus `json:"status"`
}

type EventVerifier struct {
	ID         int64 `json:"id"`
	VerifierID int64 `json:"verifier_id"`
	EventID    int64 `json:"event_id"`
}

type TicketType struct {
	ID       int64           `json:"id"`
	EventID  int64           `json:"event_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Capacity int             `json:"capacity"`
}

type Purchase struct {
	ID           int64           `json:"id"`
	EventID      int64           `json:"event_id"`
	UserID       int64           `json:"user_id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PurchaseDate time.Time       `json:"purchase_date"`
}

type PurchaseDetail struct {
	ID           int64           `json:"id"`
	PurchaseID   int64           `json:"purchase_id"`
	TicketTypeID int64           `json:"ticket_type_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// Ticket carries the redemption code scanned at the gate. The code is
// assigned once at creation and never changes; the row is never deleted,
// only transitioned active -> used or expired.
type Ticket struct {
	ID         int64        `json:"id"`
	PurchaseID int64        `json:"purchase_id"`
	Code       string       `json:"code"`
	CreatedAt  time.Time    `json:"created_at"`
	UsedAt     *time.Time   `json:"used_at,omitempty"`
	Status     TicketStatus `json:"status"`
	VerifierID *int64       `json:"verifier_id,omitempty"`
}

type Report struct {
	ID          int64            `json:"id"`
	UserID      int64            `json:"user_id"`
	ReportType  string           `json:"report_type"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"created_at"`
	Status      ModerationStatus `json:"status"`
}

type ContactMessage struct {
	ID         int64            `json:"id"`
	FirstNames string           `json:"first_names"`
	LastNames  string           `json:"last_names"`
	Email      string           `json:"email"`
	Phone      *string          `json:"phone,omitempty"`
	Subject    string           `json:"subject"`
	Message    string           `json:"message"`
	CreatedAt  time.Time        `json:"created_at"`
	Status     ModerationStatus `json:"status"`
}

type Favorite struct {
	ID      int64 `json:"id"`
	UserID  int64 `json:"user_id"`
	EventID int64 `json:"event_id"`
}

type Rating struct {
	ID      int64   `json:"id"`
	UserID  int64   `json:"user_id"`
	EventID int64   `json:"event_id"`
	Score   int     `json:"score"`
	Comment *string `json:"comment,omitempty"`
}

type Claim struct {
	ID                 int64            `json:"id"`
	FirstNames         string           `json:"first_names"`
	LastNames          string           `json:"last_names"`
	DocumentType       string           `json:"document_type"`
	DocumentNumber     string           `json:"document_number"`
	Address            string           `json:"address"`
	DistrictID         int64            `json:"district_id"`
	HomePhone          *string          `json:"home_phone,omitempty"`
	MobilePhone        string           `json:"mobile_phone"`
	Email              string           `json:"email"`
	IsMinor            bool             `json:"is_minor"`
	ClaimAmount        *decimal.Decimal `json:"claim_amount,omitempty"`
	ServiceType        string           `json:"service_type"`
	ProductDescription string           `json:"product_service_description"`
	ClaimType          string           `json:"claim_type"`
	ClaimDetail        string           `json:"claim_detail"`
	CustomerRequest    string           `json:"customer_request"`
	CreatedAt          time.Time        `json:"created_at"`
	Status             ModerationStatus `json:"status"`
}
