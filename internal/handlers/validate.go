package handlers

import (
	"github.com/go-playground/validator/v10"

	"bessonnitsa/internal/models"
)

// validate is the shared validator instance. Struct tags carry the rules;
// all checks run before any store or storage call is made.
var validate = validator.New()

// eventInput carries the admin event form fields through validation.
// Date is a display label, required but never parsed.
type eventInput struct {
	Date         string           `validate:"required,max=200"`
	Title        string           `validate:"required,max=300"`
	Description  string           `validate:"required,max=2000"`
	Icon         models.EventIcon `validate:"required,oneof=Music Sparkles Calendar"`
	DisplayOrder int              `validate:"min=0"`
}

// categoryInput carries the admin menu category form fields through validation.
type categoryInput struct {
	Title        string          `validate:"required,max=300"`
	Description  string          `validate:"required,max=2000"`
	Icon         models.MenuIcon `validate:"required,oneof=Utensils Wine Coffee"`
	DisplayOrder int             `validate:"min=0"`
}

// validateEvent checks event form inputs and returns a user-facing error
// message, or "" when the input is valid.
func validateEvent(in *eventInput) string {
	if err := validate.Struct(in); err != nil {
		if !in.Icon.Valid() {
			return "Unknown event icon."
		}
		return "Fill in all required fields."
	}
	return ""
}

// validateCategory checks menu category form inputs and returns a
// user-facing error message, or "" when the input is valid.
func validateCategory(in *categoryInput) string {
	if err := validate.Struct(in); err != nil {
		if !in.Icon.Valid() {
			return "Unknown menu icon."
		}
		return "Fill in all required fields."
	}
	return ""
}

// validateBooking checks a booking payload. All five fields are required.
func validateBooking(b *models.BookingRequest) string {
	if err := validate.Struct(b); err != nil {
		return "Fill in all required fields."
	}
	return ""
}
