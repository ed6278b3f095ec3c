package request

import (
	"strings"

	"lashdiary/internal/usecase/commands"
)

type CreateBookingRequest struct {
	Name              string   `json:"name" binding:"required,max=255"`
	Email             string   `json:"email" binding:"required,email"`
	Phone             string   `json:"phone" binding:"required,max=32"`
	Date              string   `json:"date" binding:"omitempty,datetime=2006-01-02"`
	TimeSlot          string   `json:"timeSlot" binding:"required"`
	Services          []string `json:"services" binding:"omitempty,dive,required"`
	PromoCode         string   `json:"promoCode" binding:"max=64"`
	Notes             string   `json:"notes" binding:"max=1000"`
	PaymentTrackingID string   `json:"paymentTrackingId" binding:"max=128"`
}

func (r CreateBookingRequest) ToInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		Name:              r.Name,
		Email:             r.Email,
		Phone:             r.Phone,
		Date:              r.Date,
		TimeSlot:          r.TimeSlot,
		ServiceIDs:        r.Services,
		PromoCode:         strings.TrimSpace(r.PromoCode),
		Notes:             r.Notes,
		PaymentTrackingID: r.PaymentTrackingID,
	}
}

// ManageBookingRequest is a client self-service action. Transfer fields are
// checked by the domain so the transferee rules live in one place.
type ManageBookingRequest struct {
	Action      string `json:"action" binding:"required,oneof=reschedule transfer"`
	NewDate     string `json:"newDate" binding:"omitempty,datetime=2006-01-02"`
	NewTimeSlot string `json:"newTimeSlot"`
	NewName     string `json:"newName" binding:"max=255"`
	NewEmail    string `json:"newEmail" binding:"max=255"`
	NewPhone    string `json:"newPhone" binding:"max=32"`
	Notes       string `json:"notes" binding:"max=1000"`
}

func (r ManageBookingRequest) ToInput() commands.ManageInput {
	return commands.ManageInput{
		Action:      r.Action,
		NewDate:     r.NewDate,
		NewTimeSlot: r.NewTimeSlot,
		NewName:     r.NewName,
		NewEmail:    r.NewEmail,
		NewPhone:    r.NewPhone,
		Notes:       r.Notes,
	}
}
