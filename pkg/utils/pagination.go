package utils

import (
	"net/url"
	"strconv"
)

// PageParams is the result of parsing list query parameters. Requested is
// false when either parameter is missing or non-numeric; callers then return
// the full listing. Bad pagination input is deliberately not an error.
type PageParams struct {
	Requested bool
	Limit     uint64
	Offset    uint64
}

func ParsePaginationParams(values url.Values) PageParams {
	pageStr := values.Get("page")
	perPageStr := values.Get("per_page")
	if pageStr == "" || perPageStr == "" {
		return PageParams{}
	}

	page, err := strconv.ParseUint(pageStr, 10, 64)
	if err != nil || page == 0 {
		return PageParams{}
	}
	perPage, err := strconv.ParseUint(perPageStr, 10, 64)
	if err != nil || perPage == 0 {
		return PageParams{}
	}

	return PageParams{
		Requested: true,
		Limit:     perPage,
		Offset:    (page - 1) * perPage,
	}
}
