package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/reporting"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

type ReportingHandler struct {
	service reporting.Service
}

func NewReportingHandler(service reporting.Service) *ReportingHandler {
	return &ReportingHandler{service: service}
}

// Dashboard handles GET /api/v1/admin/dashboard
func (h *ReportingHandler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "failed to load dashboard")
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// MySummary handles GET /api/v1/users/me/summary
func (h *ReportingHandler) MySummary(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	summary, err := h.service.UserSummary(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, "failed to load summary")
		return
	}

	response.Success(c, http.StatusOK, summary)
}
