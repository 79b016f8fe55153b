package models

import (
	"time"
)

// Quote statuses are the ground truth stored in the database. The richer
// quick-access model (see QuickStatus constants) is mapped down onto these
// on write.
const (
	QuoteStatusPending  = "pending"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRejected = "rejected"
	QuoteStatusExpired  = "expired"
)

// Quick-access quote statuses. Only win/lose survive the down-mapping;
// everything else collapses to pending. Known lossy, kept on purpose.
const (
	QuickStatusReceived         = "received"
	QuickStatusWaitingSupplier  = "waiting_supplier"
	QuickStatusQuotedToCustomer = "quoted_to_customer"
	QuickStatusFollowUp         = "follow_up"
	QuickStatusWin              = "win"
	QuickStatusLose             = "lose"
)

const (
	ArtworkStatusPendingReview  = "pending_review"
	ArtworkStatusInReview       = "in_review"
	ArtworkStatusPrepress       = "prepress"
	ArtworkStatusProofReady     = "proof_ready"
	ArtworkStatusRevisionNeeded = "revision_needed"
	ArtworkStatusApproved       = "approved"
	ArtworkStatusInProduction   = "in_production"
)

const (
	OrderStatusPending        = "pending"
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusProduction     = "production"
	OrderStatusShipped        = "shipped"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// ArtworkStatuses lists every artwork state in workflow order. The controller
// does not enforce adjacency; this is for pickers and validation only.
var ArtworkStatuses = []string{
	ArtworkStatusPendingReview,
	ArtworkStatusInReview,
	ArtworkStatusPrepress,
	ArtworkStatusProofReady,
	ArtworkStatusRevisionNeeded,
	ArtworkStatusApproved,
	ArtworkStatusInProduction,
}

var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusPendingPayment,
	OrderStatusConfirmed,
	OrderStatusProduction,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

var QuoteStatuses = []string{
	QuoteStatusPending,
	QuoteStatusAccepted,
	QuoteStatusRejected,
	QuoteStatusExpired,
}

type Quote struct {
	ID          string     `json:"id"`
	QuoteNumber string     `json:"quote_number"`
	UserID      string     `json:"user_id"`
	Status      string     `json:"status"`
	TotalAmount float64    `json:"total_amount"`
	ValidUntil  time.Time  `json:"valid_until"`
	Notes       string     `json:"notes"`
	AdminReply  string     `json:"admin_reply"`
	RepliedAt   *time.Time `json:"replied_at"`
	IsRFQ       bool       `json:"is_rfq"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
}

type ArtworkFile struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	FileName      string     `json:"file_name"`
	FileURL       string     `json:"file_url"`
	ThumbnailURL  string     `json:"thumbnail_url"`
	Status        string     `json:"status"`
	AdminFeedback string     `json:"admin_feedback"`
	ProofURL      string     `json:"proof_url"`
	CustomerCode  string     `json:"customer_code"`
	ProductCode   string     `json:"product_code"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at"`
}

type Order struct {
	ID          string     `json:"id"`
	OrderRef    string     `json:"order_ref"`
	UserID      string     `json:"user_id"`
	Status      string     `json:"status"`
	TotalAmount float64    `json:"total_amount"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
}

// Profile is a registered customer account.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Company   string    `json:"company"`
	CreatedAt time.Time `json:"created_at"`
}

// Inquiry is a CRM contact that never registered. Profiles and inquiries are
// disjoint identity sources; customer resolution checks profiles first.
type Inquiry struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Company      string    `json:"company"`
	Message      string    `json:"message"`
	Unsubscribed bool      `json:"unsubscribed"`
	CreatedAt    time.Time `json:"created_at"`
}

type Subscriber struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Unsubscribed bool      `json:"unsubscribed"`
	CreatedAt    time.Time `json:"created_at"`
}

type EmailDraft struct {
	ID           string    `json:"id"`
	Subject      string    `json:"subject"`
	Greeting     string    `json:"greeting"`
	Content      string    `json:"content"`
	Closing      string    `json:"closing"`
	Images       []string  `json:"images"`
	SelectedPage string    `json:"selected_page"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Activity is an append-only CRM note, e.g. a record that a campaign reached
// an inquiry-sourced contact.
type Activity struct {
	ID        string    `json:"id"`
	InquiryID string    `json:"inquiry_id"`
	Kind      string    `json:"kind"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // bcrypt hash
}
