package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"book-catalog/internal/domains/author/model"
	"book-catalog/internal/domains/author/service"
	"book-catalog/internal/shared/apperror"
	"book-catalog/internal/shared/pagination"
	"book-catalog/internal/shared/response"
	"book-catalog/internal/shared/utils"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// RegisterRoutes mounts /authors; writeGuard wraps the mutating routes
func (h *AuthorHandler) RegisterRoutes(router *gin.RouterGroup, writeGuard gin.HandlerFunc) {
	authors := router.Group("/authors")
	{
		authors.GET("", h.FindAll)
		authors.GET("/name", h.FindByName)
		authors.GET("/:id", h.FindByID)
		authors.POST("", writeGuard, h.Create)
		authors.PUT("/:id", writeGuard, h.Update)
		authors.DELETE("/:id", writeGuard, h.Delete)
	}
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/authors?page=&size=
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) FindAll(c *gin.Context) {
	page, err := h.service.FindAll(c.Request.Context(), pagination.FromQuery(c))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, page)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/authors/name?text=
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) FindByName(c *gin.Context) {
	page, err := h.service.FindByNameContaining(c.Request.Context(), c.Query("text"), pagination.FromQuery(c))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, page)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) FindByID(c *gin.Context) {
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
// CREATE: POST /v1/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var input model.AuthorInput
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
// UPDATE: PUT /v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	var input model.AuthorInput
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
// DELETE: DELETE /v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
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
