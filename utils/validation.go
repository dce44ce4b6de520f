package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// PAN: 5 uppercase letters + 4 digits + 1 uppercase letter, e.g. ABCDE1234F.
func ValidatePAN(pan string) bool {
	panRegex := regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]{1}$`)
	return panRegex.MatchString(pan)
}

// National ID: 12-digit numeric string.
func ValidateNationalID(id string) bool {
	idRegex := regexp.MustCompile(`^[0-9]{12}$`)
	return idRegex.MatchString(id)
}

// Voter EPIC: fixed VOTER prefix, 8 characters total, e.g. VOTER001.
func ValidateEPIC(epic string) bool {
	return len(epic) == 8 && strings.HasPrefix(epic, "VOTER")
}

// IFSC: 4 letters + literal zero + 6 alphanumerics, e.g. SBIN0001234.
func ValidateIFSC(ifsc string) bool {
	ifscRegex := regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	return ifscRegex.MatchString(ifsc)
}

func ValidateSIMNumber(sim string) bool {
	simRegex := regexp.MustCompile(`^[0-9]{10}$`)
	return simRegex.MatchString(sim)
}

func ValidateAccountNumber(accNo string) bool {
	accRegex := regexp.MustCompile(`^[0-9]{6,18}$`)
	return accRegex.MatchString(accNo)
}

func ValidateEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func ValidateMobile(mobile string) bool {
	mobileRegex := regexp.MustCompile(`^[0-9]{10}$`)
	return mobileRegex.MatchString(mobile)
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func SanitizeString(input string) string {
	return strings.TrimSpace(input)
}

func FormatValidationError(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			field := strings.ToLower(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				errors[field] = fmt.Sprintf("%s is required", field)
			case "email":
				errors[field] = "Invalid email format"
			case "oneof":
				errors[field] = fmt.Sprintf("%s must be one of: %s", field, fieldError.Param())
			case "min":
				errors[field] = fmt.Sprintf("%s must be at least %s characters", field, fieldError.Param())
			case "max":
				errors[field] = fmt.Sprintf("%s must be at most %s characters", field, fieldError.Param())
			case "len":
				errors[field] = fmt.Sprintf("%s must be exactly %s characters", field, fieldError.Param())
			default:
				errors[field] = fmt.Sprintf("%s is invalid", field)
			}
		}
	}

	return errors
}
