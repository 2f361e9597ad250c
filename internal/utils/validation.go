package utils

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"hospital-management-server/internal/apperrors"
)

var validate = validator.New()

// Validate performs validation on a struct.
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// FormatValidationError formats validation errors into a readable string.
func FormatValidationError(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok {
		var errorMessages []string
		for _, e := range errs {
			errorMessages = append(errorMessages, e.Field()+" failed on '"+e.Tag()+"'")
		}
		return strings.Join(errorMessages, ", ")
	}
	return err.Error()
}

// BindAndValidate binds the request body to a struct and validates it.
// If validation fails, it sends a VALIDATION_FAILED response and returns false
// before any store write happens.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		BadRequest(c, apperrors.ValidationFailed, "Invalid request payload: "+err.Error())
		return false
	}
	if err := Validate(obj); err != nil {
		BadRequest(c, apperrors.ValidationFailed, "Validation failed: "+FormatValidationError(err))
		return false
	}
	return true
}

// ValidDate reports whether s is a calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidClockTime reports whether s is a time of day in HH:MM form.
func ValidClockTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// Today returns the current date in the YYYY-MM-DD form used by appointment
// and availability rows. The format sorts lexicographically, so string
// comparisons against column values order correctly.
func Today() string {
	return time.Now().Format("2006-01-02")
}
