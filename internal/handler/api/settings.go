package api

import (
	"net/http"

	reqdto "lashdiary/internal/handler/dto/request"
	resdto "lashdiary/internal/handler/dto/response"
	"lashdiary/internal/usecase/commands"
	"lashdiary/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	cmds commands.SettingsCommands
	q    queries.SettingsQueries
}

func NewSettingsHandler(cmds commands.SettingsCommands, q queries.SettingsQueries) *SettingsHandler {
	return &SettingsHandler{cmds: cmds, q: q}
}

// @Summary Get studio settings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SettingsResponse
// @Router /admin/settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.q.Get(c.Request.Context())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSettings(s))
}

// @Summary Update studio settings
// @Description Fields left out of the body keep their saved values
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpdateSettingsRequest true "Settings"
// @Success 200 {object} resdto.SettingsResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req reqdto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}

	current, err := h.q.Get(c.Request.Context())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	saved, err := h.cmds.Update(c.Request.Context(), req.ToDomain(current))
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSettings(saved))
}
