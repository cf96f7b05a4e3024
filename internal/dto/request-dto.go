package dto

import (
	"github.com/shopspring/decimal"

	"licensing-system/internal/entities"
	"licensing-system/pkg/constants"
)

type CreateRequestDTO struct {
	Type            constants.RequestType  `json:"type" validate:"required,request_type"`
	FacilityType    constants.FacilityType `json:"facility_type" validate:"required,facility_type"`
	FacilityName    string                 `json:"facility_name" validate:"required,not_blank,max=200"`
	OwnerName       string                 `json:"owner_name" validate:"required,not_blank,max=150"`
	OwnerPhone      string                 `json:"owner_phone" validate:"required,phone_ye"`
	OwnerEmail      string                 `json:"owner_email" validate:"omitempty,email,max=150"`
	OwnerAddress    string                 `json:"owner_address" validate:"omitempty,max=300"`
	FacilityAddress string                 `json:"facility_address" validate:"required,not_blank,max=300"`
	ProvinceID      int                    `json:"province_id" validate:"required,min=1"`
}

// RequestActionDTO carries one workflow action. Which optional fields are required depends on the action.
type RequestActionDTO struct {
	Action           constants.RequestAction `json:"action" validate:"required"`
	Notes            string                  `json:"notes" validate:"omitempty,max=2000"`
	ReceiptNumber    string                  `json:"receipt_number" validate:"omitempty,max=100"`
	ReceiptAmount    decimal.NullDecimal     `json:"receipt_amount"`
	PaymentReference string                  `json:"payment_reference" validate:"omitempty,max=100"`
	LicenseNumber    string                  `json:"license_number" validate:"omitempty,max=100"`
}

// RequestDetailsDTO is a request with its timeline and the actions the viewer may take.
type RequestDetailsDTO struct {
	entities.RequestDetails
	Logs             []entities.ActionLogView  `json:"logs"`
	AvailableActions []constants.RequestAction `json:"available_actions"`
}

type FeeQuoteDTO struct {
	Type         constants.RequestType  `json:"type" query:"type" validate:"required,request_type"`
	FacilityType constants.FacilityType `json:"facility_type" query:"facility_type" validate:"required,facility_type"`
	Amount       int64                  `json:"amount"`
}
