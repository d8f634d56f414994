package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-catalog/internal/domains/author/model"
	"book-catalog/internal/domains/author/service"
	infraCache "book-catalog/internal/infrastructure/cache"
	"book-catalog/internal/infrastructure/memstore"
	"book-catalog/internal/shared/pagination"
)

type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewService(memstore.New().Authors(), infraCache.NewNoopCache(), time.Minute)

	r := gin.New()
	NewAuthorHandler(svc).RegisterRoutes(r.Group("/api/v1"), func(c *gin.Context) { c.Next() })
	return r
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var out envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

var joPayload = map[string]any{
	"name":      "Jo Nesbø",
	"birthDate": "1960-03-29",
	"email":     "jo@nesbo.no",
	"biography": "Norwegian writer and musician.",
}

func TestCreateAndFetch(t *testing.T) {
	r := newRouter()

	w := do(r, http.MethodPost, "/api/v1/authors", joPayload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/api/v1/authors/1", w.Header().Get("Location"))

	created := decode[model.AuthorView](t, w)
	assert.True(t, created.Success)
	assert.Equal(t, model.DefaultPictureURL, created.Data.URLPicture)

	w = do(r, http.MethodGet, "/api/v1/authors/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.Data, decode[model.AuthorView](t, w).Data)
}

func TestCreateDuplicateEmail(t *testing.T) {
	r := newRouter()
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/v1/authors", joPayload).Code)

	dup := map[string]any{"name": "Someone", "email": "JO@nesbo.no", "biography": "x"}
	w := do(r, http.MethodPost, "/api/v1/authors", dup)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_EMAIL", decode[any](t, w).Error.Code)
}

func TestCreateValidationFailure(t *testing.T) {
	r := newRouter()

	w := do(r, http.MethodPost, "/api/v1/authors", map[string]any{"email": "nope"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[any](t, w)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Contains(t, body.Error.Details, "name")
	assert.Contains(t, body.Error.Details, "email")
	assert.Contains(t, body.Error.Details, "biography")
}

func TestMalformedRequests(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/v1/authors", "{not json").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/v1/authors/abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodDelete, "/api/v1/authors/0", nil).Code)
}

func TestUpdateAndDelete(t *testing.T) {
	r := newRouter()
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/v1/authors", joPayload).Code)

	changed := map[string]any{"id": 99, "name": "Jo Nesbo", "email": "jo@nesbo.no", "biography": "Updated."}
	w := do(r, http.MethodPut, "/api/v1/authors/1", changed)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[model.AuthorView](t, w).Data
	assert.Equal(t, int64(1), updated.ID)
	assert.Equal(t, "Jo Nesbo", updated.Name)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/api/v1/authors/5", changed).Code)

	w = do(r, http.MethodDelete, "/api/v1/authors/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(r, http.MethodGet, "/api/v1/authors/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode[any](t, w).Error.Code)
}

func TestListAndSearch(t *testing.T) {
	r := newRouter()
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/v1/authors", joPayload).Code)
	karin := map[string]any{"name": "Karin Fossum", "email": "karin@fossum.no", "biography": "Crime."}
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/v1/authors", karin).Code)

	w := do(r, http.MethodGet, "/api/v1/authors?page=0&size=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[pagination.Page[model.AuthorView]](t, w).Data
	assert.Equal(t, int64(2), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Content, 1)

	w = do(r, http.MethodGet, "/api/v1/authors/name?text=karin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page = decode[pagination.Page[model.AuthorView]](t, w).Data
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Karin Fossum", page.Content[0].Name)
}
