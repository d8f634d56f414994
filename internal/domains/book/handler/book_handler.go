package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/domains/book/service"
	"book-catalog/internal/shared/apperror"
	"book-catalog/internal/shared/pagination"
	"book-catalog/internal/shared/response"
	"book-catalog/internal/shared/utils"
)

// maxCoverUpload bounds the multipart body read into memory
const maxCoverUpload = 8 << 20

type BookHandler struct {
	service service.ServiceInterface
	covers  service.CoverServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{
		service: svc,
	}
}

// WithCovers enables the cover upload routes
func (h *BookHandler) WithCovers(covers service.CoverServiceInterface) *BookHandler {
	h.covers = covers
	return h
}

// RegisterRoutes mounts /books; writeGuard wraps the mutating routes
func (h *BookHandler) RegisterRoutes(router *gin.RouterGroup, writeGuard gin.HandlerFunc) {
	books := router.Group("/books")
	{
		books.GET("", h.FindAll)
		books.GET("/title", h.search(h.service.FindByTitleContaining))
		books.GET("/language", h.search(h.service.FindByLanguageContaining))
		books.GET("/publisher", h.search(h.service.FindByPublisherContaining))
		books.GET("/author", h.search(h.service.FindByAuthorName))
		books.GET("/export", h.Export)
		books.GET("/:id", h.FindByID)
		books.POST("", writeGuard, h.Create)
		books.PUT("/:id", writeGuard, h.Update)
		books.DELETE("/:id", writeGuard, h.Delete)

		if h.covers != nil {
			books.PUT("/:id/cover", writeGuard, h.UploadCover)
			books.DELETE("/:id/cover", writeGuard, h.RemoveCover)
		}
	}
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/books?page=&size=
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) FindAll(c *gin.Context) {
	page, err := h.service.FindAll(c.Request.Context(), pagination.FromQuery(c))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, page)
}

type searchFunc func(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.BookView], error)

// search serves GET /v1/books/{title,language,publisher,author}?text=
func (h *BookHandler) search(find searchFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := find(c.Request.Context(), c.Query("text"), pagination.FromQuery(c))
		if err != nil {
			response.Fail(c, err)
			return
		}

		response.Success(c, http.StatusOK, page)
	}
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/books/:id
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) FindByID(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	view, err := h.service.FindByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /v1/books
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Create(c *gin.Context) {
	var input model.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, apperror.Invalid("body", "malformed JSON: "+err.Error()))
		return
	}

	view, err := h.service.Save(c.Request.Context(), input)
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("%s/%d", c.Request.URL.Path, view.ID))
	response.Success(c, http.StatusCreated, view)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /v1/books/:id
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	var input model.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, apperror.Invalid("body", "malformed JSON: "+err.Error()))
		return
	}

	view, err := h.service.UpdateByID(c.Request.Context(), id, input)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /v1/books/:id
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Delete(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	if err := h.service.DeleteByID(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}

	response.NoContent(c)
}

// ════════════════════════════════════════════════════════════════
// EXPORT: GET /v1/books/export
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Export(c *gin.Context) {
	file, err := h.service.ExportToExcel(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="books.xlsx"`)
	c.Status(http.StatusOK)
	if err := file.Write(c.Writer); err != nil {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Failed to write export")
	}
}

// ════════════════════════════════════════════════════════════════
// COVER: PUT|DELETE /v1/books/:id/cover
// ════════════════════════════════════════════════════════════════

// UploadCover expects a multipart form with the image in field "file"
func (h *BookHandler) UploadCover(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxCoverUpload)
	header, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, apperror.Invalid("file", "a multipart file field is required"))
		return
	}

	src, err := header.Open()
	if err != nil {
		response.Fail(c, apperror.Invalid("file", err.Error()))
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		response.Fail(c, apperror.Invalid("file", err.Error()))
		return
	}

	view, err := h.covers.Upload(c.Request.Context(), id, data)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

func (h *BookHandler) RemoveCover(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	view, err := h.covers.Remove(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}
