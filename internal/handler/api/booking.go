package api

import (
	"net/http"

	reqdto "lashdiary/internal/handler/dto/request"
	resdto "lashdiary/internal/handler/dto/response"
	"lashdiary/internal/usecase/commands"
	"lashdiary/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Book a generated slot. The response carries the manage token exactly once.
// @Tags booking
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /booking/create [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}

	res, err := resdto.FromCreateResult(result)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Get booking by manage token
// @Description Returns the booking without internal fields, plus what the holder may still change.
// @Tags booking
// @Produce json
// @Param token path string true "Manage token"
// @Success 200 {object} resdto.ManageBookingResponse
// @Failure 404 {object} httperr.Response
// @Router /booking/manage/{token} [get]
func (h *BookingHandler) GetManage(c *gin.Context) {
	view, err := h.q.GetByManageToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	res, err := resdto.FromManageView(view)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Manage booking
// @Description Reschedule or transfer a booking with its manage token
// @Tags booking
// @Accept json
// @Produce json
// @Param token path string true "Manage token"
// @Param request body reqdto.ManageBookingRequest true "Manage request"
// @Success 200 {object} resdto.ManageBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /booking/manage/{token} [post]
func (h *BookingHandler) Manage(c *gin.Context) {
	var req reqdto.ManageBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}

	view, err := h.cmds.Manage(c.Request.Context(), c.Param("token"), req.ToInput())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	res, err := resdto.FromManageView(view)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
