package ticket

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tickettracker/internal/application/ticket/usecases"
	vo "tickettracker/internal/domain/ticket/valueobjects"
	"tickettracker/internal/interfaces/http/middleware"
	"tickettracker/internal/shared/errors"
	"tickettracker/internal/shared/logger"
	"tickettracker/internal/shared/utils"
)

const ticketListURL = "/tickets"

// UseCases groups the executors the ticket handler drives.
type UseCases struct {
	Create    usecases.CreateTicketExecutor
	Update    usecases.UpdateTicketExecutor
	Accept    usecases.AcceptTicketExecutor
	Assign    usecases.AssignTicketExecutor
	Close     usecases.CloseTicketExecutor
	Reopen    usecases.ReopenTicketExecutor
	Comment   usecases.AddCommentExecutor
	Split     usecases.SplitTicketExecutor
	Vote      usecases.VoteTicketExecutor
	Get       usecases.GetTicketExecutor
	List      usecases.ListTicketsExecutor
	SetActive usecases.SetTicketActiveExecutor
}

type TicketHandler struct {
	uc     UseCases
	logger logger.Interface
}

func NewTicketHandler(uc UseCases, logger logger.Interface) *TicketHandler {
	return &TicketHandler{uc: uc, logger: logger}
}

func ticketURL(id uint) string {
	if id == 0 {
		return ticketListURL
	}
	return fmt.Sprintf("/tickets/%d", id)
}

// fail answers a use case error. Refusals redirect the way the browser flow
// expects: forbidden back to the ticket, missing tickets to the list.
func (h *TicketHandler) fail(c *gin.Context, err error, ticketID uint) {
	switch {
	case errors.IsForbiddenError(err):
		h.logger.Infow("ticket action denied", "reason", err.Error(), "ticket_id", ticketID, "path", c.Request.URL.Path)
		utils.RedirectResponse(c, ticketURL(ticketID))
	case errors.IsNotFoundError(err):
		utils.RedirectResponse(c, ticketListURL)
	default:
		if errors.GetAppError(err) == nil {
			h.logger.Errorw("ticket request failed", "error", err, "ticket_id", ticketID, "path", c.Request.URL.Path)
		}
		utils.ErrorResponseWithError(c, err)
	}
}

func parseTicketID(c *gin.Context) (uint, error) {
	return utils.ParseUintParam(c, "id", "ticket")
}

// ListTickets handles GET /tickets
// @Summary List tickets
// @Description Filtered, paginated ticket list. Anonymous callers see active tickets only.
// @Tags Tickets
// @Produce json
// @Param view query string false "open or closed"
// @Param status query string false "Exact status, overrides view"
// @Param ticket_type query string false "feature, bug or task"
// @Param priority query int false "1 (critical) to 5 (very low)"
// @Param application query string false "Application slug"
// @Param assigned_to query string false "Assignee username"
// @Param submitted_by query string false "Submitter username"
// @Param owner query string false "Submitter or assignee username"
// @Param q query string false "Title or description contains"
// @Param tag query string false "Tag"
// @Param include_inactive query bool false "Admins only"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	var req ListTicketsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	p := utils.ParsePagination(c)

	result, err := h.uc.List.Execute(c.Request.Context(), usecases.ListTicketsQuery{
		Viewer:          middleware.CurrentUser(c),
		View:            req.View,
		Status:          req.Status,
		Type:            req.Type,
		Priority:        req.Priority,
		Application:     req.Application,
		AssignedTo:      req.AssignedTo,
		SubmittedBy:     req.SubmittedBy,
		Owner:           req.Owner,
		Query:           req.Query,
		Tag:             req.Tag,
		IncludeInactive: req.IncludeInactive,
		Page:            p.Page,
		PageSize:        p.PageSize,
	})
	if err != nil {
		h.fail(c, err, 0)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

// CreateTicket handles POST /tickets
// @Summary Open a ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body TicketFieldsRequest true "Ticket fields"
// @Success 303 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req TicketFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.uc.Create.Execute(c.Request.Context(), usecases.CreateTicketCommand{
		Actor:             middleware.CurrentUser(c),
		TicketFieldsInput: req.toInput(),
	})
	if err != nil {
		h.fail(c, err, 0)
		return
	}

	utils.SeeOtherResponse(c, ticketURL(result.ID), "Ticket created successfully", result)
}

// GetTicket handles GET /tickets/:id
// @Summary Ticket detail
// @Description Ticket with the follow-ups the viewer may see, its duplicate links, parent and children.
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDetailDTO}
// @Failure 303 {object} utils.APIResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Get.Execute(c.Request.Context(), usecases.GetTicketQuery{
		Viewer:   middleware.CurrentUser(c),
		TicketID: ticketID,
	})
	if err != nil {
		h.fail(c, err, ticketID)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateTicket handles PUT /tickets/:id
// @Summary Edit a ticket
// @Description Replaces the editable fields. Status never changes through an edit.
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body TicketFieldsRequest true "Ticket fields"
// @Success 303 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/{id} [put]
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req TicketFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.uc.Update.Execute(c.Request.Context(), usecases.UpdateTicketCommand{
		Actor:             middleware.CurrentUser(c),
		TicketID:          ticketID,
		TicketFieldsInput: req.toInput(),
	})
	if err != nil {
		h.fail(c, err, ticketID)
		return
	}

	utils.SeeOtherResponse(c, ticketURL(ticketID), "Ticket updated successfully", result)
}

// AcceptTicket handles POST /tickets/:id/accept
// @Summary Accept a ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body CommentRequest true "Comment"
// @Success 303 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/{id}/accept [post]
func (h *TicketHandler) AcceptTicket(c *gin.Context) {
	ticketID, req, ok := bindComment(c)
	if !ok {
		return
	}

	result, err := h.uc.Accept.Execute(c.Request.Context(), usecases.AcceptTicketCommand{
		Actor:    middleware.CurrentUser(c),
		TicketID: ticketID,
		Comment:  req.Comment,
	})
	if err != nil {
		h.fail(c, err, ticketID)
		return
	}

	utils.SeeOtherResponse(c, ticketURL(ticketID), "Ticket accepted", result)
}

// AssignTicket handles POST /tickets/:id/assign
// @Summary Assign a ticket to a staff member
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body AssignTicketRequest true "Assignee and comment"
// @Success 303 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/{id}/assign [post]
func (h *TicketHandler) AssignTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.uc.Assign.Execute(c.Request.Context(), usecases.AssignTicketCommand{
		Actor:      middleware.CurrentUser(c),
		TicketID:   ticketID,
		AssigneeID: req.AssignedTo,
		Comment:    req.Comment,
	})
	if err != nil {
		h.fail(c, err, ticketID)
		return
	}

	utils.SeeOtherResponse(c, ticketURL(ticketID), "Ticket assigned", result)
}

// CloseTicket handles POST /tickets/:id/close
// @Summary Close a ticket
// @Description Closes plainly, or as a duplicate of same_as_ticket when duplicate is set.
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body CloseTicketRequest true "Close request"
// @Success 303 {object} utils.APIResponse{data=usecases.CloseTicketResult}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/{id}/close [post]
func (h *TicketHandler) CloseTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CloseTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.uc.Close.Execute(c.Request.Context(), usecases.CloseTicketCommand{
		Actor:        middleware.CurrentUser(c),
		TicketID:     ticketID,
		Comment:      req.Comment,
		Duplicate:    req.Duplicate,
		SameAsTicket: req.SameAsTicket,
	})
	if err != nil {
		h.fail(c, err, ticketID)
		return
	}

	utils.SeeOtherResponse(c, ticketURL(ticketID), "Ticket closed", result)
}

// ReopenTicket handles POST /tickets/:id/reopen
func (h *TicketHandler) ReopenTicket(c *gin.Context) {
	ticketID, req, ok := bindComment(c)
	if !ok {
		return
	}

	result, err := h.uc.Reopen.Execute(c.Request.Context(), usecases.ReopenTicketCommand{
		Actor:    middleware.CurrentUser(c),
		TicketID: ticketID,
		Comment:  req.Comment,
	})
	if err != nil {
		h.fail(c, err, ticketID)
		return
	}

	utils.SeeOtherResponse(c, ticketURL(ticketID), "Ticket re-opened", result)
}

// AddComment handles POST /tickets/:id/comments
// @Summary Comment on a ticket
// @Description The private flag is kept only for admins and the submitter.
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body AddCommentRequest true "Comment"
// @Success 303 {object} utils.APIResponse{data=dto.FollowUpDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/{id}/comments [post]
func (h *TicketHandler) AddComment(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.uc.Comment.Execute(c.Request.Context(), usecases.AddCommentCommand{
		Actor:    middleware.CurrentUser(c),
		TicketID: ticketID,
		Comment:  req.Comment,
		Private:  req.Private,
	})
	if err != nil {
		h.fail(c, err, ticketID)
		return
	}

	utils.SeeOtherResponse(c, ticketURL(ticketID), "Comment added", result)
}

// SplitTicket handles POST /tickets/:id/split
// @Summary Split a ticket in two
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body SplitTicketRequest true "Comment and exactly two children"
// @Success 303 {object} utils.APIResponse{data=usecases.SplitTicketResult}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/{id}/split [post]
func (h *TicketHandler) SplitTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SplitTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.uc.Split.Execute(c.Request.Context(), usecases.SplitTicketCommand{
		Actor:    middleware.CurrentUser(c),
		TicketID: ticketID,
		Comment:  req.Comment,
		Children: req.toChildren(),
	})
	if err != nil {
		h.fail(c, err, ticketID)
		return
	}

	utils.SeeOtherResponse(c, ticketURL(ticketID), "Ticket split", result)
}

// UpVote handles POST /tickets/:id/upvote
func (h *TicketHandler) UpVote(c *gin.Context) {
	h.vote(c, vo.VoteUp)
}

// DownVote handles POST /tickets/:id/downvote
func (h *TicketHandler) DownVote(c *gin.Context) {
	h.vote(c, vo.VoteDown)
}

func (h *TicketHandler) vote(c *gin.Context, direction vo.VoteDirection) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Vote.Execute(c.Request.Context(), usecases.VoteTicketCommand{
		Actor:     middleware.CurrentUser(c),
		TicketID:  ticketID,
		Direction: direction,
	})
	if err != nil {
		h.fail(c, err, ticketID)
		return
	}

	utils.SeeOtherResponse(c, ticketURL(ticketID), "", result)
}

// Deactivate handles POST /tickets/:id/deactivate
func (h *TicketHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

// Activate handles POST /tickets/:id/activate
func (h *TicketHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

func (h *TicketHandler) setActive(c *gin.Context, active bool) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.SetActive.Execute(c.Request.Context(), usecases.SetTicketActiveCommand{
		Actor:    middleware.CurrentUser(c),
		TicketID: ticketID,
		Active:   active,
	})
	if err != nil {
		h.fail(c, err, ticketID)
		return
	}

	message := "Ticket deactivated"
	if active {
		message = "Ticket activated"
	}
	utils.SeeOtherResponse(c, ticketURL(ticketID), message, result)
}

func bindComment(c *gin.Context) (uint, CommentRequest, bool) {
	var req CommentRequest
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, req, false
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return 0, req, false
	}
	return ticketID, req, true
}
