package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/catalog"
	"library-backend/internal/shared/response"
)

const maxCoverSize = 5 << 20 // 5 MiB

type CatalogHandler struct {
	service catalog.Service
}

func NewCatalogHandler(service catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ========================================
// BOOKS
// ========================================

// ListBooks handles GET /api/v1/books
func (h *CatalogHandler) ListBooks(c *gin.Context) {
	var req catalog.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	req.SetDefaults()

	books, total, err := h.service.ListBooks(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// GetBook handles GET /api/v1/books/:id
func (h *CatalogHandler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	detail, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// CreateBook handles POST /api/v1/admin/books
func (h *CatalogHandler) CreateBook(c *gin.Context) {
	var req catalog.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// UpdateBook handles PUT /api/v1/admin/books/:id
func (h *CatalogHandler) UpdateBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	var req catalog.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, book)
}

// UploadCover handles POST /api/v1/admin/books/:id/cover (multipart)
func (h *CatalogHandler) UploadCover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		response.BadRequest(c, "cover file is required")
		return
	}
	if fileHeader.Size > maxCoverSize {
		response.BadRequest(c, "cover file exceeds 5MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalServerError(c, "failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxCoverSize))
	if err != nil {
		response.InternalServerError(c, "failed to read upload")
		return
	}

	book, err := h.service.UploadCover(c.Request.Context(), id, data)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, book)
}

// DeleteBook handles DELETE /api/v1/admin/books/:id
func (h *CatalogHandler) DeleteBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "book deleted"})
}

// ========================================
// COPIES
// ========================================

// AddCopy handles POST /api/v1/admin/books/:id/copies
func (h *CatalogHandler) AddCopy(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	var req catalog.AddCopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	copy, err := h.service.AddCopy(c.Request.Context(), bookID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, copy)
}

// UpdateCopyStatus handles PATCH /api/v1/admin/copies/:id/status
func (h *CatalogHandler) UpdateCopyStatus(c *gin.Context) {
	copyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid copy id")
		return
	}

	var req catalog.UpdateCopyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	copy, err := h.service.UpdateCopyStatus(c.Request.Context(), copyID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, copy)
}

// DeleteCopy handles DELETE /api/v1/admin/copies/:id
func (h *CatalogHandler) DeleteCopy(c *gin.Context) {
	copyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid copy id")
		return
	}

	if err := h.service.DeleteCopy(c.Request.Context(), copyID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "copy deleted"})
}

func (h *CatalogHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrBookNotFound):
		response.ErrorResponse(c, http.StatusNotFound, catalog.CodeBookNotFound, err.Error())
	case errors.Is(err, catalog.ErrCopyNotFound):
		response.ErrorResponse(c, http.StatusNotFound, catalog.CodeCopyNotFound, err.Error())
	case errors.Is(err, catalog.ErrISBNAlreadyExists):
		response.ErrorResponse(c, http.StatusConflict, catalog.CodeISBNExists, err.Error())
	case errors.Is(err, catalog.ErrBarcodeExists):
		response.ErrorResponse(c, http.StatusConflict, catalog.CodeBarcodeExists, err.Error())
	case errors.Is(err, catalog.ErrCopyNotDeletable):
		response.ErrorResponse(c, http.StatusConflict, catalog.CodeCopyIssued, err.Error())
	case errors.Is(err, catalog.ErrInvalidCoverImage):
		response.ErrorResponse(c, http.StatusBadRequest, catalog.CodeInvalidCover, err.Error())
	default:
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", vErrs)
			return
		}
		response.InternalServerError(c, "something went wrong")
	}
}
