package utils

import (
	"net/url"
	"strconv"
	"strings"

	"licensing-system/pkg/types"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ParseFilter reads search, filter[field]=v1,v2, sort=-field, page and limit into a types.Filter.
// Pagination is always on; limit is clamped to MaxLimit.
func ParseFilter(query url.Values) types.Filter {
	f := types.Filter{
		Filter:         make(map[string]interface{}),
		Sort:           make(map[string]string),
		Limit:          DefaultLimit,
		Page:           1,
		WithPagination: true,
	}

	for key, values := range query {
		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") && len(values) > 0 && values[0] != "" {
			f.Filter[key[7:len(key)-1]] = values[0]
		}
	}

	if l, err := strconv.Atoi(query.Get("limit")); err == nil && l > 0 {
		f.Limit = l
		if l > MaxLimit {
			f.Limit = MaxLimit
		}
	}
	if p, err := strconv.Atoi(query.Get("page")); err == nil && p > 0 {
		f.Page = p
	}
	f.Offset = (f.Page - 1) * f.Limit

	f.Search = strings.TrimSpace(query.Get("search"))

	if sort := query.Get("sort"); sort != "" {
		if strings.HasPrefix(sort, "-") {
			f.Sort[sort[1:]] = "desc"
		} else {
			f.Sort[sort] = "asc"
		}
	}

	return f
}
