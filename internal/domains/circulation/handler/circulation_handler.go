package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/circulation"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

type CirculationHandler struct {
	service circulation.Service
}

func NewCirculationHandler(service circulation.Service) *CirculationHandler {
	return &CirculationHandler{service: service}
}

// ========================================
// BORROWER ENDPOINTS
// ========================================

// Borrow handles POST /api/v1/borrows
func (h *CirculationHandler) Borrow(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req circulation.BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	borrow, err := h.service.Borrow(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, borrow)
}

// ListMyBorrows handles GET /api/v1/borrows
func (h *CirculationHandler) ListMyBorrows(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req circulation.ListBorrowsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	req.UserID = &userID
	req.SetDefaults()

	borrows, total, err := h.service.ListBorrows(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, borrows, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// ListMyFines handles GET /api/v1/fines
func (h *CirculationHandler) ListMyFines(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req circulation.ListFinesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	req.UserID = &userID
	req.SetDefaults()

	fines, total, err := h.service.ListFines(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, fines, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// ========================================
// STAFF ENDPOINTS
// ========================================

// ListAllBorrows handles GET /api/v1/admin/borrows
func (h *CirculationHandler) ListAllBorrows(c *gin.Context) {
	var req circulation.ListBorrowsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			response.BadRequest(c, "invalid user_id filter")
			return
		}
		req.UserID = &userID
	}
	req.SetDefaults()

	borrows, total, err := h.service.ListBorrows(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, borrows, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// Return handles POST /api/v1/admin/borrows/:id/return
func (h *CirculationHandler) Return(c *gin.Context) {
	borrowID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid borrow id")
		return
	}

	// Body is optional: no body means no override.
	var req circulation.ReturnRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "invalid request body")
			return
		}
	}

	resp, err := h.service.Return(c.Request.Context(), borrowID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ListAllFines handles GET /api/v1/admin/fines
func (h *CirculationHandler) ListAllFines(c *gin.Context) {
	var req circulation.ListFinesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			response.BadRequest(c, "invalid user_id filter")
			return
		}
		req.UserID = &userID
	}
	req.SetDefaults()

	fines, total, err := h.service.ListFines(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, fines, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// PayFine handles POST /api/v1/admin/fines/:id/pay
func (h *CirculationHandler) PayFine(c *gin.Context) {
	fineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid fine id")
		return
	}

	fine, err := h.service.PayFine(c.Request.Context(), fineID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, fine)
}

func (h *CirculationHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, circulation.ErrBorrowNotFound):
		response.ErrorResponse(c, http.StatusNotFound, circulation.CodeBorrowNotFound, err.Error())
	case errors.Is(err, circulation.ErrBorrowLimit):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, circulation.CodeBorrowLimit, err.Error())
	case errors.Is(err, circulation.ErrUnpaidFines):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, circulation.CodeUnpaidFines, err.Error())
	case errors.Is(err, circulation.ErrNoCopyAvailable):
		response.ErrorResponse(c, http.StatusConflict, circulation.CodeNoCopyAvailable, err.Error())
	case errors.Is(err, circulation.ErrAlreadyReturned):
		response.ErrorResponse(c, http.StatusConflict, circulation.CodeAlreadyReturned, err.Error())
	case errors.Is(err, circulation.ErrFineNotFound):
		response.ErrorResponse(c, http.StatusNotFound, circulation.CodeFineNotFound, err.Error())
	case errors.Is(err, circulation.ErrFineAlreadyPaid):
		response.ErrorResponse(c, http.StatusConflict, circulation.CodeFineAlreadyPaid, err.Error())
	case errors.Is(err, circulation.ErrNegativeOverride),
		errors.Is(err, circulation.ErrDueDateNotFuture):
		response.BadRequest(c, err.Error())
	default:
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", vErrs)
			return
		}
		response.InternalServerError(c, "something went wrong")
	}
}
