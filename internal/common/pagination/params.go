package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params represents pagination query parameters from an HTTP request.
type Params struct {
	Page     int // 1-based page number
	PageSize int
}

// ParseQueryParams reads ?page from r. A missing value yields config.DefaultPage.
// Non-numeric, non-positive or capped page numbers are errors.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{Page: config.DefaultPage, PageSize: config.PageSize}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return params, fmt.Errorf("invalid page number: page must be a positive integer")
		}
		params.Page = page
	}
	return params, params.Validate(config)
}
