package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		size       int
		wantOffset uint64
		wantLimit  int
	}{
		{name: "first page", page: 1, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "third page", page: 3, size: 20, wantOffset: 40, wantLimit: 20},
		{name: "zero page falls back", page: 0, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "negative page falls back", page: -2, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "zero size falls back", page: 2, size: 0, wantOffset: 10, wantLimit: DefaultPageSize},
		{name: "oversized falls back", page: 1, size: 500, wantOffset: 0, wantLimit: DefaultPageSize},
		{name: "max size kept", page: 1, size: MaxPageSize, wantOffset: 0, wantLimit: MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	tests := []struct {
		name        string
		totalItems  int64
		page        int
		size        int
		wantPages   int
		wantCurrent int
	}{
		{name: "even split", totalItems: 40, page: 1, size: 10, wantPages: 4, wantCurrent: 1},
		{name: "partial last page", totalItems: 41, page: 1, size: 10, wantPages: 5, wantCurrent: 1},
		{name: "empty listing has one page", totalItems: 0, page: 1, size: 10, wantPages: 1, wantCurrent: 1},
		{name: "page beyond range clamps", totalItems: 20, page: 9, size: 10, wantPages: 2, wantCurrent: 2},
		{name: "invalid size defaulted", totalItems: 20, page: 1, size: 0, wantPages: 2, wantCurrent: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPaginationInfo(tt.totalItems, tt.page, tt.size)

			assert.Equal(t, tt.wantPages, info.TotalPages)
			assert.Equal(t, tt.wantCurrent, info.CurrentPage)
			assert.Equal(t, tt.totalItems, info.TotalItems)
		})
	}
}

func TestParsePaginationParams(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{name: "defaults", query: "", wantPage: 1, wantSize: 10},
		{name: "explicit values", query: "?page=3&size=25", wantPage: 3, wantSize: 25},
		{name: "garbage page", query: "?page=abc&size=25", wantPage: 1, wantSize: 25},
		{name: "negative page", query: "?page=-1", wantPage: 1, wantSize: 10},
		{name: "oversized size", query: "?size=9999", wantPage: 1, wantSize: 10},
		{name: "zero size", query: "?size=0", wantPage: 1, wantSize: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/"+tt.query, nil)

			page, size := ParsePaginationParams(c)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}
