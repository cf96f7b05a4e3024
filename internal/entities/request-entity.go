package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"licensing-system/pkg/constants"
)

// LevelApproval is the sign-off record of one approval level.
type LevelApproval struct {
	Approved   bool          `json:"approved" db:"approved"`
	ApprovedBy uuid.NullUUID `json:"approved_by" db:"approved_by"`
	ApprovedAt null.Time     `json:"approved_at" db:"approved_at"`
	Notes      null.String   `json:"notes" db:"notes"`
}

type Request struct {
	ID            uuid.UUID              `json:"id" db:"id"`
	RequestNumber string                 `json:"request_number" db:"request_number"`
	Type          constants.RequestType  `json:"type" db:"type"`
	FacilityType  constants.FacilityType `json:"facility_type" db:"facility_type"`
	UserID        uuid.UUID              `json:"user_id" db:"user_id"`

	FacilityName    string      `json:"facility_name" db:"facility_name"`
	OwnerName       string      `json:"owner_name" db:"owner_name"`
	OwnerPhone      string      `json:"owner_phone" db:"owner_phone"`
	OwnerEmail      null.String `json:"owner_email" db:"owner_email"`
	OwnerAddress    null.String `json:"owner_address" db:"owner_address"`
	FacilityAddress string      `json:"facility_address" db:"facility_address"`
	ProvinceID      int         `json:"province_id" db:"province_id"`

	FeeAmount int64 `json:"fee_amount" db:"fee_amount"`

	Status       constants.RequestStatus `json:"status" db:"status"`
	CurrentLevel constants.Level         `json:"current_level" db:"current_level"`

	Branch     LevelApproval `json:"branch"`
	Facilities LevelApproval `json:"facilities"`
	Review     LevelApproval `json:"review"`
	Deputy     LevelApproval `json:"deputy"`

	ReceiptNumber    null.String         `json:"receipt_number" db:"receipt_number"`
	ReceiptAmount    decimal.NullDecimal `json:"receipt_amount" db:"receipt_amount"`
	ReceiptIssuedAt  null.Time           `json:"receipt_issued_at" db:"receipt_issued_at"`
	PaymentReference null.String         `json:"payment_reference" db:"payment_reference"`
	PaymentVerified  bool                `json:"payment_verified" db:"payment_verified"`
	PaidAt           null.Time           `json:"paid_at" db:"paid_at"`

	LicenseNumber     null.String `json:"license_number" db:"license_number"`
	LicenseIssuedAt   null.Time   `json:"license_issued_at" db:"license_issued_at"`
	LicenseExpiryDate null.Time   `json:"license_expiry_date" db:"license_expiry_date"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Approval returns the sign-off record for an approval level, or nil for any other level.
func (r *Request) Approval(level constants.Level) *LevelApproval {
	switch level {
	case constants.LevelBranch:
		return &r.Branch
	case constants.LevelFacilities:
		return &r.Facilities
	case constants.LevelReview:
		return &r.Review
	case constants.LevelDeputy:
		return &r.Deputy
	}
	return nil
}

// RequestDetails is a request joined with its submitter and province for display.
type RequestDetails struct {
	Request
	SubmitterName  string `json:"submitter_name" db:"submitter_name"`
	SubmitterEmail string `json:"submitter_email" db:"submitter_email"`
	ProvinceName   string `json:"province_name" db:"province_name"`
	ProvinceCode   string `json:"province_code" db:"province_code"`
}
