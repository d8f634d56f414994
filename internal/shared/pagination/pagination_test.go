package pagination

import (
	"math"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPageRequestClamps(t *testing.T) {
	assert.Equal(t, PageRequest{Page: 0, Size: DefaultSize}, NewPageRequest(-3, 0))
	assert.Equal(t, PageRequest{Page: 2, Size: MaxSize}, NewPageRequest(2, 1000))
	assert.Equal(t, 40, NewPageRequest(2, 20).Offset())
	assert.Equal(t, 20, NewPageRequest(2, 20).Limit())
}

func TestNewPageRequestHugePageKeepsOffsetPositive(t *testing.T) {
	req := NewPageRequest(math.MaxInt64/50, 100)

	assert.Equal(t, math.MaxInt32/100, req.Page)
	assert.Positive(t, req.Offset())
	assert.LessOrEqual(t, req.Offset(), math.MaxInt32)
}

func TestNewPageComputesTotals(t *testing.T) {
	p := NewPage([]int{1, 2}, NewPageRequest(0, 2), 5)

	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(5), p.TotalElements)
	assert.Equal(t, []int{1, 2}, p.Content)
}

func TestNewPageNeverNilContent(t *testing.T) {
	p := NewPage[string](nil, NewPageRequest(0, 10), 0)

	assert.NotNil(t, p.Content)
	assert.Equal(t, 0, p.TotalPages)
}

func TestMapKeepsMetadata(t *testing.T) {
	p := NewPage([]int{1, 2, 3}, NewPageRequest(1, 3), 6)

	out := Map(p, func(i int) string { return strconv.Itoa(i * 10) })

	assert.Equal(t, []string{"10", "20", "30"}, out.Content)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 2, out.TotalPages)
}

func TestFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query string
		want  PageRequest
	}{
		{"", PageRequest{Page: 0, Size: DefaultSize}},
		{"?page=2&size=5", PageRequest{Page: 2, Size: 5}},
		{"?page=abc&size=xyz", PageRequest{Page: 0, Size: DefaultSize}},
		{"?size=500", PageRequest{Page: 0, Size: MaxSize}},
		{"?page=184467440737095516&size=100", PageRequest{Page: math.MaxInt32 / 100, Size: 100}},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/authors"+tt.query, nil)

		assert.Equal(t, tt.want, FromQuery(c), tt.query)
	}
}
