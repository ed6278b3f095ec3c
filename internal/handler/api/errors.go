package api

import (
	"log/slog"
	"net/http"

	"lashdiary/internal/domain/booking"
	"lashdiary/internal/domain/catalog"
	"lashdiary/internal/domain/schedule"
	"lashdiary/internal/domain/studio"
	"lashdiary/internal/handler/httperr"
	"lashdiary/internal/pkg/errs"
	"lashdiary/internal/usecase/commands"
	"lashdiary/internal/usecase/queries"
	"lashdiary/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type errorRule struct {
	target   error
	status   int
	reason   string
	useCause bool
}

// Rules are matched in order, so specific domain errors come before the
// generic marks they are wrapped with.
var errorRules = []errorRule{
	{booking.ErrMissingContact, http.StatusBadRequest, "missing_contact", false},
	{booking.ErrInvalidEmail, http.StatusBadRequest, "invalid_email", false},
	{booking.ErrInvalidTransferee, http.StatusBadRequest, "invalid_transferee", false},
	{schedule.ErrInvalidDate, http.StatusBadRequest, "invalid_date", false},
	{schedule.ErrInvalidTimeSlot, http.StatusBadRequest, "invalid_time_slot", false},
	{shared.ErrSlotNotOffered, http.StatusBadRequest, "slot_not_offered", false},
	{catalog.ErrUnknownService, http.StatusBadRequest, "unknown_service", false},
	{commands.ErrInvalidPromo, http.StatusBadRequest, "invalid_promo", false},
	{commands.ErrInvalidAction, http.StatusBadRequest, "invalid_action", false},
	{queries.ErrInvalidRange, http.StatusBadRequest, "invalid_range", false},
	{commands.ErrDomainValidation, http.StatusBadRequest, "validation_failed", true},

	{booking.ErrManageDisabled, http.StatusForbidden, "manage_disabled", false},

	{commands.ErrBookingNotFound, http.StatusNotFound, "booking_not_found", false},
	{queries.ErrBookingNotFound, http.StatusNotFound, "booking_not_found", false},

	{shared.ErrSlotUnavailable, http.StatusConflict, "slot_unavailable", false},

	{studio.ErrOutsideBookingWindow, http.StatusUnprocessableEntity, "outside_booking_window", false},
	{shared.ErrSlotInPast, http.StatusUnprocessableEntity, "slot_in_past", false},
	{booking.ErrSameSlot, http.StatusUnprocessableEntity, "same_slot", false},
	{booking.ErrWithinCutoff, http.StatusUnprocessableEntity, "within_cutoff", false},
	{booking.ErrAppointmentPassed, http.StatusUnprocessableEntity, "appointment_passed", false},
	{booking.ErrBookingCancelled, http.StatusUnprocessableEntity, "booking_cancelled", false},
	{booking.ErrAlreadyCancelled, http.StatusUnprocessableEntity, "already_cancelled", false},
}

// abortWithUsecaseError maps use case errors to the JSON error body. Anything
// unmapped is logged with its stack and surfaces as a 500.
func abortWithUsecaseError(c *gin.Context, err error) {
	for _, r := range errorRules {
		if errs.Is(err, r.target) {
			msg := r.target.Error()
			if r.useCause {
				msg = errs.Cause(err).Error()
			}
			httperr.AbortWithReason(c, r.status, err, msg, r.reason)
			return
		}
	}

	slog.Error("unhandled use case error",
		"path", c.FullPath(),
		"error", err.Error(),
		"stack", errs.ExtractStackLines(err, 12))
	httperr.AbortWithReason(c, http.StatusInternalServerError, err, "Internal server error", "internal")
}

func abortInvalidRequest(c *gin.Context, err error) {
	httperr.AbortWithReason(c, http.StatusBadRequest, err, "Invalid request", "invalid_request")
}
