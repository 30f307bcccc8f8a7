package params

import (
	"restaurant-directory/core/constants"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

// NewQueryParams reads page_number, page_size and search from the query
// string. Out-of-range values fall back to the defaults.
func NewQueryParams(c echo.Context) QueryParams {
	params := QueryParams{
		PageNumber: constants.DefaultPageNumber,
		PageSize:   constants.DefaultPageSize,
		Search:     strings.TrimSpace(c.QueryParam("search")),
	}

	if n, err := strconv.Atoi(c.QueryParam("page_number")); err == nil && n > 0 {
		params.PageNumber = n
	}
	if n, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && n > 0 {
		if n > constants.MaxPageSize {
			n = constants.MaxPageSize
		}
		params.PageSize = n
	}
	return params
}
