package middleware

import (
	"catalog-service/internal/pagination"

	"github.com/labstack/echo/v4"
)

const paginationContextKey = "pagination"

// Paginate resolves page/limit query parameters and stores the window in the
// request context. It is composed onto the listing route only; wiring it
// ahead of every route would pre-empt non-list handlers.
func Paginate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := pagination.Parse(c.QueryParam("page"), c.QueryParam("limit"))
		c.Set(paginationContextKey, params)
		return next(c)
	}
}

// PageParams retrieves the resolved window from the context, falling back to
// the defaults when the middleware did not run.
func PageParams(c echo.Context) pagination.Params {
	if params, ok := c.Get(paginationContextKey).(pagination.Params); ok {
		return params
	}
	return pagination.Parse("", "")
}
