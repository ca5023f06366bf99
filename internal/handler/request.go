package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/fxola/trivia-api/internal/pagination"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator plugs go-playground/validator into echo's c.Validate
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a new request validator
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate validates a bound request struct
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

// flexInt accepts a JSON number or a numeric string. Anything else decodes
// to zero, which the question validator rejects.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	n, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}

// pageParams reads ?page= and ?page_size=, falling back to the defaults.
// Malformed values are a bad request.
func pageParams(c echo.Context, defaultPageSize int) (page, pageSize int, err error) {
	page, pageSize = pagination.DefaultPage, defaultPageSize

	if raw := c.QueryParam("page"); raw != "" {
		if page, err = strconv.Atoi(raw); err != nil {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
		}
	}
	if raw := c.QueryParam("page_size"); raw != "" {
		if pageSize, err = strconv.Atoi(raw); err != nil {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
		}
	}
	return page, pageSize, nil
}

// idParam reads a positive integer path parameter; anything else is not found
func idParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, notFound()
	}
	return id, nil
}
