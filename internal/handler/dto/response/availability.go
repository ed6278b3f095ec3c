package response

import (
	"time"

	"lashdiary/internal/usecase/queries"
)

type SlotResponse struct {
	TimeSlot time.Time `json:"timeSlot"`
	Label    string    `json:"label"`
}

// AvailabilityResponse.FullyBooked counts bookings only. Slots that have
// already started are dropped from Slots without making the day fully booked.
type AvailabilityResponse struct {
	Date        string         `json:"date"`
	Slots       []SlotResponse `json:"slots"`
	FullyBooked bool           `json:"fullyBooked"`
}

type FullyBookedResponse struct {
	Dates []string `json:"dates"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	slots := make([]SlotResponse, len(v.Slots))
	for i, s := range v.Slots {
		slots[i] = SlotResponse(s)
	}
	return &AvailabilityResponse{
		Date:        v.Date,
		Slots:       slots,
		FullyBooked: v.FullyBooked,
	}
}
