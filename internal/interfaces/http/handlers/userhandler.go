package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tickettracker/internal/application/ticket/usecases"
	"tickettracker/internal/shared/logger"
	"tickettracker/internal/shared/utils"
)

type UserHandler struct {
	listStaffUC usecases.ListStaffExecutor
	logger      logger.Interface
}

func NewUserHandler(listStaffUC usecases.ListStaffExecutor, logger logger.Interface) *UserHandler {
	return &UserHandler{listStaffUC: listStaffUC, logger: logger}
}

// ListStaff handles GET /users/staff
// @Summary Staff members tickets can be assigned to
// @Tags Users
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=[]dto.UserDTO}
// @Router /users/staff [get]
func (h *UserHandler) ListStaff(c *gin.Context) {
	staff, err := h.listStaffUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list staff", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", staff)
}
