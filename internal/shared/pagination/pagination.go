package pagination

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultSize = 20
	MaxSize     = 100
)

// PageRequest selects a zero-based page of results
type PageRequest struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// NewPageRequest clamps page and size into their allowed ranges
func NewPageRequest(page, size int) PageRequest {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	// keep Page*Size inside int32 so OFFSET never wraps
	if maxPage := math.MaxInt32 / size; page > maxPage {
		page = maxPage
	}
	return PageRequest{Page: page, Size: size}
}

func (p PageRequest) Limit() int {
	return p.Size
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// FromQuery reads ?page=&size= and falls back to defaults on garbage
func FromQuery(c *gin.Context) PageRequest {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		page = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultSize)))
	if err != nil {
		size = DefaultSize
	}
	return NewPageRequest(page, size)
}

// Page is one slice of a larger result set
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// Map converts the content of a page while keeping its metadata
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Content))
	for i, item := range p.Content {
		out[i] = fn(item)
	}
	return Page[U]{
		Content:       out,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
}
