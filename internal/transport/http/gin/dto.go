package httpgin

import (
	"time"

	"github.com/suyay-events/suyay-go/internal/domain"
)

type RegisterRequest struct {
	FirstNames string  `json:"first_names" binding:"required"`
	LastNames  string  `json:"last_names" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	Phone      *string `json:"phone"`
	Gender     *string `json:"gender"`
	AvatarURL  *string `json:"avatar_url"`
	RoleID     int64   `json:"role_id"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        domain.User `json:"user"`
}

type UpdateUserRequest struct {
	FirstNames *string `json:"first_names"`
	LastNames  *string `json:"last_names"`
	AvatarURL  *string `json:"avatar_url"`
	Phone      *string `json:"phone"`
	Gender     *string `json:"gender"`
}

type CreateOrganizerRequest struct {
	UserID              int64   `json:"user_id" binding:"required"`
	DocumentType        string  `json:"document_type" binding:"required"`
	DocumentNumber      string  `json:"document_number" binding:"required"`
	BusinessName        *string `json:"business_name"`
	TaxID               *string `json:"tax_id"`
	WorkCertificateFile *string `json:"work_certificate_file"`
}

type UpdateOrganizerRequest struct {
	DocumentType        *string `json:"document_type"`
	DocumentNumber      *string `json:"document_number"`
	BusinessName        *string `json:"business_name"`
	TaxID               *string `json:"tax_id"`
	WorkCertificateFile *string `json:"work_certificate_file"`
	IsApproved          *bool   `json:"is_approved"`
}

type CreateVerifierRequest struct {
	UserID      int64 `json:"user_id" binding:"required"`
	OrganizerID int64 `json:"organizer_id" binding:"required"`
}

type ReassignVerifierRequest struct {
	OrganizerID int64 `json:"organizer_id" binding:"required"`
}

type CreateEventRequest struct {
	Title               string  `json:"title" binding:"required"`
	Description         *string `json:"description"`
	StartDate           string  `json:"start_date" binding:"required"`
	EndDate             string  `json:"end_date" binding:"required"`
	DistrictID          int64   `json:"district_id" binding:"required"`
	LocationDescription *string `json:"location_description"`
	CategoryID          int64   `json:"category_id" binding:"required"`
	OrganizerID         int64   `json:"organizer_id" binding:"required"`
	ImageURL            *string `json:"image_url"`
}

type UpdateEventRequest struct {
	Title               *string `json:"title"`
	Description         *string `json:"description"`
	StartDate           *string `json:"start_date"`
	EndDate             *string `json:"end_date"`
	DistrictID          *int64  `json:"district_id"`
	LocationDescription *string `json:"location_description"`
	CategoryID          *int64  `json:"category_id"`
	ImageURL            *string `json:"image_url"`
	Status              *string `json:"status"`
}

type CreateTicketTypeRequest struct {
	EventID  int64  `json:"event_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Price    string `json:"price" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}

type UpdateTicketTypeRequest struct {
	Name     *string `json:"name"`
	Price    *string `json:"price"`
	Capacity *int    `json:"capacity"`
}

type PurchaseItemInput struct {
	TicketTypeID int64 `json:"ticket_type_id" binding:"required"`
	Quantity     int   `json:"quantity" binding:"required,gt=0"`
}

type CreatePurchaseRequest struct {
	EventID int64               `json:"event_id" binding:"required"`
	UserID  int64               `json:"user_id" binding:"required"`
	Items   []PurchaseItemInput `json:"items" binding:"required,min=1,dive"`
}

type CreateTicketRequest struct {
	PurchaseID int64 `json:"purchase_id" binding:"required"`
}

type CreateFavoriteRequest struct {
	UserID  int64 `json:"user_id" binding:"required"`
	EventID int64 `json:"event_id" binding:"required"`
}

type CreateRatingRequest struct {
	UserID  int64   `json:"user_id" binding:"required"`
	EventID int64   `json:"event_id" binding:"required"`
	Score   int     `json:"score" binding:"required"`
	Comment *string `json:"comment"`
}

type CreateReportRequest struct {
	UserID      int64  `json:"user_id" binding:"required"`
	ReportType  string `json:"report_type" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type ModerationRequest struct {
	Status string `json:"status" binding:"required,oneof=pending reviewed resolved"`
}

type CreateClaimRequest struct {
	FirstNames         string  `json:"first_names" binding:"required"`
	LastNames          string  `json:"last_names" binding:"required"`
	DocumentType       string  `json:"document_type" binding:"required"`
	DocumentNumber     string  `json:"document_number" binding:"required"`
	Address            string  `json:"address" binding:"required"`
	DistrictID         int64   `json:"district_id" binding:"required"`
	HomePhone          *string `json:"home_phone"`
	MobilePhone        string  `json:"mobile_phone" binding:"required"`
	Email              string  `json:"email" binding:"required,email"`
	IsMinor            bool    `json:"is_minor"`
	ClaimAmount        *string `json:"claim_amount"`
	ServiceType        string  `json:"service_type" binding:"required"`
	ProductDescription string  `json:"product_service_description" binding:"required"`
	ClaimType          string  `json:"claim_type" binding:"required"`
	ClaimDetail        string  `json:"claim_detail" binding:"required"`
	CustomerRequest    string  `json:"customer_request" binding:"required"`
}

type CreateContactRequest struct {
	FirstNames string  `json:"first_names" binding:"required"`
	LastNames  string  `json:"last_names" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Phone      *string `json:"phone"`
	Subject    string  `json:"subject" binding:"required"`
	Message    string  `json:"message" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
