package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"

	"licensing-system/pkg/constants"
)

// ReportFilter narrows an export. Empty fields do not filter.
type ReportFilter struct {
	ProvinceID   null.Int
	Status       constants.RequestStatus
	Type         constants.RequestType
	FacilityType constants.FacilityType
	DateFrom     *time.Time
	DateTo       *time.Time
}

// ReportItem is one exported request row.
type ReportItem struct {
	RequestNumber     string                  `json:"request_number"`
	Type              constants.RequestType   `json:"type"`
	FacilityType      constants.FacilityType  `json:"facility_type"`
	FacilityName      string                  `json:"facility_name"`
	OwnerName         string                  `json:"owner_name"`
	OwnerPhone        string                  `json:"owner_phone"`
	FacilityAddress   string                  `json:"facility_address"`
	ProvinceName      string                  `json:"province_name"`
	SubmitterName     string                  `json:"submitter_name"`
	Status            constants.RequestStatus `json:"status"`
	CurrentLevel      constants.Level         `json:"current_level"`
	FeeAmount         int64                   `json:"fee_amount"`
	ReceiptNumber     null.String             `json:"receipt_number"`
	ReceiptAmount     decimal.NullDecimal     `json:"receipt_amount"`
	PaymentVerified   bool                    `json:"payment_verified"`
	LicenseNumber     null.String             `json:"license_number"`
	LicenseExpiryDate null.Time               `json:"license_expiry_date"`
	CreatedAt         time.Time               `json:"created_at"`
}
