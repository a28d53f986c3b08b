package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tickettracker/internal/application/ticket/usecases"
	"tickettracker/internal/interfaces/http/middleware"
	"tickettracker/internal/shared/errors"
	"tickettracker/internal/shared/logger"
	"tickettracker/internal/shared/utils"
)

type CreateApplicationRequest struct {
	Name string `json:"name" binding:"required,max=20"`
}

type ApplicationHandler struct {
	createUC usecases.CreateApplicationExecutor
	listUC   usecases.ListApplicationsExecutor
	logger   logger.Interface
}

func NewApplicationHandler(
	createUC usecases.CreateApplicationExecutor,
	listUC usecases.ListApplicationsExecutor,
	logger logger.Interface,
) *ApplicationHandler {
	return &ApplicationHandler{createUC: createUC, listUC: listUC, logger: logger}
}

// ListApplications handles GET /applications
// @Summary List applications
// @Tags Applications
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]dto.ApplicationDTO}
// @Router /applications [get]
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	apps, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list applications", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", apps)
}

// CreateApplication handles POST /applications
// @Summary Create an application
// @Description Admins only. The slug is derived from the name.
// @Tags Applications
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateApplicationRequest true "Application name"
// @Success 201 {object} utils.APIResponse{data=dto.ApplicationDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /applications [post]
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	app, err := h.createUC.Execute(c.Request.Context(), usecases.CreateApplicationCommand{
		Actor: middleware.CurrentUser(c),
		Name:  req.Name,
	})
	if err != nil {
		if errors.GetAppError(err) == nil {
			h.logger.Errorw("failed to create application", "error", err, "name", req.Name)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Application created successfully", app)
}
