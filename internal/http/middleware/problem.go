package middleware

import (
	"net/http"

	echo "github.com/labstack/echo/v4"
)

const MIMEProblemJSON = "application/problem+json"

// Problem is an RFC 9457 validation problem body.
type Problem struct {
	Type   string              `json:"type"`
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Errors map[string][]string `json:"errors"`
}

// ValidationProblem writes a 400 problem response listing errs per field.
func ValidationProblem(c echo.Context, errs map[string][]string) error {
	c.Response().Header().Set(echo.HeaderContentType, MIMEProblemJSON)
	return c.JSON(http.StatusBadRequest, Problem{
		Type:   "https://tools.ietf.org/html/rfc9110#section-15.5.1",
		Title:  "One or more validation errors occurred.",
		Status: http.StatusBadRequest,
		Errors: errs,
	})
}
