package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/event"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

type EventHandler struct {
	service event.Service
}

func NewEventHandler(service event.Service) *EventHandler {
	return &EventHandler{service: service}
}

// ListApproved handles GET /api/v1/events — the public calendar.
func (h *EventHandler) ListApproved(c *gin.Context) {
	var req event.ListEventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	approved := event.StatusApproved
	req.Status = &approved
	req.SetDefaults()

	events, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, events, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// Create handles POST /api/v1/events (teachers)
func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req event.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	e, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, e)
}

// ListMine handles GET /api/v1/events/mine (teachers)
func (h *EventHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req event.ListEventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	req.OrganizerID = &userID
	req.SetDefaults()

	events, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, events, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// Delete handles DELETE /api/v1/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	isAdmin := c.GetString(middleware.CtxRole) == middleware.RoleAdmin
	if err := h.service.Delete(c.Request.Context(), userID, eventID, isAdmin); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "event deleted"})
}

// ========================================
// ADMIN
// ========================================

// ListAll handles GET /api/v1/admin/events
func (h *EventHandler) ListAll(c *gin.Context) {
	var req event.ListEventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	req.SetDefaults()

	events, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, events, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// Approve handles POST /api/v1/admin/events/:id/approve
func (h *EventHandler) Approve(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	e, err := h.service.Approve(c.Request.Context(), eventID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, e)
}

// Reject handles POST /api/v1/admin/events/:id/reject
func (h *EventHandler) Reject(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	e, err := h.service.Reject(c.Request.Context(), eventID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, e)
}

func (h *EventHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, event.ErrEventNotFound):
		response.ErrorResponse(c, http.StatusNotFound, event.CodeEventNotFound, err.Error())
	case errors.Is(err, event.ErrNotPending):
		response.ErrorResponse(c, http.StatusConflict, event.CodeNotPending, err.Error())
	case errors.Is(err, event.ErrNotOwner):
		response.ErrorResponse(c, http.StatusForbidden, event.CodeNotOwner, err.Error())
	default:
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", vErrs)
			return
		}
		response.InternalServerError(c, "something went wrong")
	}
}
