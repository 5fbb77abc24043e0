package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/reservation"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

type ReservationHandler struct {
	service reservation.Service
}

func NewReservationHandler(service reservation.Service) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// Create handles POST /api/v1/reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req reservation.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	res, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res)
}

// Cancel handles DELETE /api/v1/reservations/:id
func (h *ReservationHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid reservation id")
		return
	}

	if err := h.service.Cancel(c.Request.Context(), userID, reservationID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "reservation cancelled"})
}

// ListMine handles GET /api/v1/reservations
func (h *ReservationHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req reservation.ListReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	req.UserID = &userID
	req.SetDefaults()

	reservations, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, reservations, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// ListAll handles GET /api/v1/admin/reservations
func (h *ReservationHandler) ListAll(c *gin.Context) {
	var req reservation.ListReservationsRequest
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

	reservations, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, reservations, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

func (h *ReservationHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reservation.ErrReservationNotFound):
		response.ErrorResponse(c, http.StatusNotFound, reservation.CodeReservationNotFound, err.Error())
	case errors.Is(err, reservation.ErrDuplicateActive):
		response.ErrorResponse(c, http.StatusConflict, reservation.CodeDuplicateActive, err.Error())
	case errors.Is(err, reservation.ErrNotOwner):
		response.ErrorResponse(c, http.StatusForbidden, reservation.CodeNotOwner, err.Error())
	case errors.Is(err, reservation.ErrNotActive):
		response.ErrorResponse(c, http.StatusConflict, reservation.CodeNotActive, err.Error())
	default:
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", vErrs)
			return
		}
		response.InternalServerError(c, "something went wrong")
	}
}
