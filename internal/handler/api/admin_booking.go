package api

import (
	"net/http"

	reqdto "lashdiary/internal/handler/dto/request"
	resdto "lashdiary/internal/handler/dto/response"
	"lashdiary/internal/usecase/commands"
	"lashdiary/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminBookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewAdminBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *AdminBookingHandler {
	return &AdminBookingHandler{cmds: cmds, q: q}
}

// @Summary List bookings
// @Description Bookings ordered by time slot, paged with an opaque cursor
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Param after query string false "Cursor from the previous page"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {object} resdto.AdminBookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /admin/bookings [get]
func (h *AdminBookingHandler) List(c *gin.Context) {
	var q reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	page, err := h.q.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	h.respond(c, http.StatusOK, func() (any, error) { return resdto.FromBookingPage(page) })
}

// @Summary Get booking
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.AdminBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/bookings/{id} [get]
func (h *AdminBookingHandler) Get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	view, err := h.q.GetForAdmin(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	h.respondView(c, view)
}

// @Summary Reschedule booking
// @Description Admin reschedule. The cancellation window and booking window do not apply.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.AdminRescheduleRequest true "Reschedule request"
// @Success 200 {object} resdto.AdminBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /admin/bookings/{id}/reschedule [post]
func (h *AdminBookingHandler) Reschedule(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req reqdto.AdminRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	view, err := h.cmds.AdminReschedule(c.Request.Context(), id, req.ToInput())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	h.respondView(c, view)
}

// @Summary Cancel booking
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.AdminCancelRequest false "Cancel request"
// @Success 200 {object} resdto.AdminBookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /admin/bookings/{id}/cancel [post]
func (h *AdminBookingHandler) Cancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req reqdto.AdminCancelRequest
	// the body is optional
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortInvalidRequest(c, err)
			return
		}
	}
	view, err := h.cmds.AdminCancel(c.Request.Context(), id, req.Reason)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	h.respondView(c, view)
}

// @Summary Toggle client self-service
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ManageAccessRequest true "Manage access"
// @Success 200 {object} resdto.AdminBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/bookings/{id}/manage-access [patch]
func (h *AdminBookingHandler) SetManageAccess(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var req reqdto.ManageAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	view, err := h.cmds.SetManageAccess(c.Request.Context(), id, *req.Disabled)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	h.respondView(c, view)
}

func (h *AdminBookingHandler) respondView(c *gin.Context, view *queries.AdminBookingView) {
	h.respond(c, http.StatusOK, func() (any, error) { return resdto.FromAdminBookingView(view) })
}

func (h *AdminBookingHandler) respond(c *gin.Context, status int, build func() (any, error)) {
	res, err := build()
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(status, res)
}

func bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortInvalidRequest(c, err)
		return uuid.Nil, false
	}
	return id, true
}
