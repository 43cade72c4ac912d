package pagination_test

import (
	"testing"

	"github.com/rise-and-shine/docstore/pagination"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_Defaults(t *testing.T) {
	var req pagination.Request
	req.Normalize()

	assert.Equal(t, 1, req.PageNumber)
	assert.Equal(t, 20, req.PageSize)
	assert.Equal(t, 0, req.Offset())
	assert.Equal(t, 20, req.Limit())
}

func TestNormalize_MaxPageSize(t *testing.T) {
	req := pagination.Request{PageNumber: 3, PageSize: 500}
	req.Normalize(pagination.WithMaxPageSize(50))

	assert.Equal(t, 50, req.PageSize)
	assert.Equal(t, 100, req.Offset())
}

func TestNewResponse_PageCount(t *testing.T) {
	req := pagination.Request{PageNumber: 2, PageSize: 10}
	req.Normalize()

	resp := pagination.NewResponse([]string{"a", "b"}, 21, req)

	assert.Equal(t, 3, resp.PageCount)
	assert.Equal(t, int64(21), resp.TotalCount)
	assert.Equal(t, 2, resp.PageNumber)
	assert.Len(t, resp.PageContent, 2)
}
