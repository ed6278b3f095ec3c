package api

import (
	"net/http"

	resdto "lashdiary/internal/handler/dto/response"
	"lashdiary/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

type availabilityQuery struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// @Summary List open slots
// @Description Open slots for one studio-local date
// @Tags availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /availability [get]
func (h *AvailabilityHandler) Get(c *gin.Context) {
	var q availabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	view, err := h.q.AvailableSlots(c.Request.Context(), q.Date)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary List fully booked dates
// @Tags availability
// @Produce json
// @Success 200 {object} resdto.FullyBookedResponse
// @Router /availability/fully-booked [get]
func (h *AvailabilityHandler) FullyBooked(c *gin.Context) {
	dates, err := h.q.FullyBookedDates(c.Request.Context())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FullyBookedResponse{Dates: dates})
}
