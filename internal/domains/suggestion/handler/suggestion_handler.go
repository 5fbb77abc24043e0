package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/suggestion"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

type SuggestionHandler struct {
	service suggestion.Service
}

func NewSuggestionHandler(service suggestion.Service) *SuggestionHandler {
	return &SuggestionHandler{service: service}
}

// Create handles POST /api/v1/suggestions (teachers)
func (h *SuggestionHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req suggestion.CreateSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	sg, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, sg)
}

// ListMine handles GET /api/v1/suggestions (teachers)
func (h *SuggestionHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req suggestion.ListSuggestionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	req.SuggesterID = &userID
	req.SetDefaults()

	suggestions, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, suggestions, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// ========================================
// ADMIN
// ========================================

// ListAll handles GET /api/v1/admin/suggestions
func (h *SuggestionHandler) ListAll(c *gin.Context) {
	var req suggestion.ListSuggestionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	req.SetDefaults()

	suggestions, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, suggestions, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// Approve handles POST /api/v1/admin/suggestions/:id/approve
func (h *SuggestionHandler) Approve(c *gin.Context) {
	suggestionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid suggestion id")
		return
	}

	sg, err := h.service.Approve(c.Request.Context(), suggestionID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, sg)
}

// Reject handles POST /api/v1/admin/suggestions/:id/reject
func (h *SuggestionHandler) Reject(c *gin.Context) {
	suggestionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid suggestion id")
		return
	}

	var req suggestion.RejectSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	sg, err := h.service.Reject(c.Request.Context(), suggestionID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, sg)
}

func (h *SuggestionHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, suggestion.ErrSuggestionNotFound):
		response.ErrorResponse(c, http.StatusNotFound, suggestion.CodeSuggestionNotFound, err.Error())
	case errors.Is(err, suggestion.ErrNotPending):
		response.ErrorResponse(c, http.StatusConflict, suggestion.CodeNotPending, err.Error())
	default:
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", vErrs)
			return
		}
		response.InternalServerError(c, "something went wrong")
	}
}
