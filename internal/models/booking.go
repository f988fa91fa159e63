package models

// BookingRequest is the payload of a public table-booking submission.
// It is never persisted: the relay formats it into a message, forwards
// it once, and drops it.
type BookingRequest struct {
	Name   string `json:"name" validate:"required,max=200"`
	Phone  string `json:"phone" validate:"required,max=50"`
	Date   string `json:"date" validate:"required,max=100"`
	Time   string `json:"time" validate:"required,max=100"`
	Guests int    `json:"guests" validate:"required,min=1,max=100"`
}
