package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaginationParams(t *testing.T) {
	testCases := []struct {
		name       string
		query      string
		wantLimit  uint64
		wantOffset uint64
		wantPage   uint64
		wantPaged  bool
	}{
		{name: "no params", query: "", wantPaged: false},
		{name: "limit only", query: "limit=20", wantLimit: 20, wantOffset: 0, wantPage: 1, wantPaged: true},
		{name: "page only", query: "page=3", wantLimit: DefaultLimit, wantOffset: 2 * DefaultLimit, wantPage: 3, wantPaged: true},
		{name: "limit capped", query: "limit=100000&page=2", wantLimit: MaxLimit, wantOffset: MaxLimit, wantPage: 2, wantPaged: true},
		{name: "garbage falls back", query: "limit=abc&page=-1", wantLimit: DefaultLimit, wantOffset: 0, wantPage: 1, wantPaged: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.query)
			assert.NoError(t, err)

			limit, offset, page, paged := ParsePaginationParams(values)
			assert.Equal(t, tc.wantPaged, paged)
			if !tc.wantPaged {
				return
			}
			assert.Equal(t, tc.wantLimit, limit)
			assert.Equal(t, tc.wantOffset, offset)
			assert.Equal(t, tc.wantPage, page)
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Paginate(items, 2, 0))
	assert.Equal(t, []int{5}, Paginate(items, 2, 4))
	assert.Empty(t, Paginate(items, 2, 10))
	assert.NotNil(t, Paginate(items, 2, 10))
}
