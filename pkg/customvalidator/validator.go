package customvalidator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"licensing-system/pkg/constants"
	"licensing-system/pkg/utils"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterCustomValidations registers the domain validation tags on v.
func RegisterCustomValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"request_type":   isRequestType,
		"facility_type":  isFacilityType,
		"role":           isRole,
		"request_action": isRequestAction,
		"request_status": isRequestStatus,
		"phone_ye":       isYemeniPhoneNumber,
		"email":          isGoodEmailFormat,
		"not_blank":      isNotBlank,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func isYemeniPhoneNumber(fl validator.FieldLevel) bool {
	return utils.NormalizeYemeniPhoneNumber(fl.Field().String()) != ""
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func isRequestType(fl validator.FieldLevel) bool {
	return constants.RequestType(fl.Field().String()).IsValid()
}

func isFacilityType(fl validator.FieldLevel) bool {
	return constants.FacilityType(fl.Field().String()).IsValid()
}

func isRole(fl validator.FieldLevel) bool {
	return constants.Role(fl.Field().String()).IsValid()
}

func isRequestAction(fl validator.FieldLevel) bool {
	return constants.RequestAction(fl.Field().String()).IsValid()
}

func isRequestStatus(fl validator.FieldLevel) bool {
	return constants.RequestStatus(fl.Field().String()).IsValid()
}
