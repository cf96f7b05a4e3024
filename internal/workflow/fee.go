package workflow

import (
	"github.com/shopspring/decimal"

	"licensing-system/pkg/constants"
)

const (
	furnishingHospitalFee  int64 = 100_000
	furnishingDefaultFee   int64 = 60_000
	operationHospitalFee   int64 = 2_000_000
	operationDiagnosticFee int64 = 100_000
	operationDefaultFee    int64 = 50_000
)

var renewalSurcharge = decimal.RequireFromString("1.3")

// CalculateFee returns the licensing fee in whole currency units.
// Unknown request or facility types fall back to the default operation fee.
func CalculateFee(requestType constants.RequestType, facilityType constants.FacilityType) int64 {
	if !facilityType.IsValid() {
		return operationDefaultFee
	}
	switch requestType {
	case constants.RequestTypeFurnishing:
		if facilityType.IsHospital() {
			return furnishingHospitalFee
		}
		return furnishingDefaultFee
	case constants.RequestTypeRenewal:
		base := decimal.NewFromInt(operationFee(facilityType))
		return base.Mul(renewalSurcharge).Round(0).IntPart()
	default:
		return operationFee(facilityType)
	}
}

func operationFee(facilityType constants.FacilityType) int64 {
	switch {
	case facilityType.IsHospital():
		return operationHospitalFee
	case facilityType == constants.FacilityDiagnosticCenter:
		return operationDiagnosticFee
	default:
		return operationDefaultFee
	}
}
