// Package pagination parses the page/limit query parameters shared by all
// list endpoints and builds the paged payload they return.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// List endpoints default to 20 rows per page; the cap keeps dashboard
// queries bounded.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is the validated page window of a list query.
type Params struct {
	Page  int
	Limit int
}

// Offset converts the window to a row offset.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Envelope returns the standard list payload: the items under key plus the
// paging metadata every list response carries.
func (p Params) Envelope(key string, items interface{}, total int64) map[string]interface{} {
	return map[string]interface{}{
		key:     items,
		"total": total,
		"page":  p.Page,
		"limit": p.Limit,
	}
}

// Parse reads page and limit from the query string. Missing, malformed or
// out-of-range values fall back to the defaults.
func Parse(c *gin.Context) Params {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}
