package utils

import (
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// ParsePaginationParams читает ?limit=&page=. Если ни один параметр не передан,
// paged=false и список отдаётся целиком.
func ParsePaginationParams(values url.Values) (limit uint64, offset uint64, page uint64, paged bool) {
	limit = DefaultLimit
	page = 1

	limitStr, pageStr := values.Get("limit"), values.Get("page")
	if limitStr == "" && pageStr == "" {
		return 0, 0, 0, false
	}

	if l, err := strconv.ParseUint(limitStr, 10, 64); err == nil && l > 0 {
		limit = min(l, MaxLimit)
	}
	if p, err := strconv.ParseUint(pageStr, 10, 64); err == nil && p > 0 {
		page = p
	}

	offset = (page - 1) * limit
	return limit, offset, page, true
}

// Paginate вырезает страницу из уже отфильтрованного списка.
func Paginate[T any](items []T, limit, offset uint64) []T {
	n := uint64(len(items))
	if offset >= n {
		return []T{}
	}
	end := min(offset+limit, n)
	return items[offset:end]
}
