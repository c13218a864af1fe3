package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmehdipour/customers-api/internal/model"
	echo "github.com/labstack/echo/v4"
)

const (
	ctxCustomer = "customer"
	ctxID       = "id"
)

// Validator adapts go-playground/validator to echo.Validator.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (cv *Validator) Validate(i any) error {
	return cv.v.Struct(i)
}

// CustomerFromCtx returns the customer bound by ValidateCustomer.
func CustomerFromCtx(c echo.Context) (model.Customer, bool) {
	cust, ok := c.Get(ctxCustomer).(model.Customer)
	return cust, ok
}

// IDFromCtx returns the id parsed by UUIDParam.
func IDFromCtx(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ctxID).(uuid.UUID)
	return id, ok
}

// UUIDParam parses the named path parameter. Anything that is not a UUID is
// treated as an unmatched route.
func UUIDParam(name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := uuid.Parse(c.Param(name))
			if err != nil {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
			}
			c.Set(ctxID, id)
			return next(c)
		}
	}
}

// ValidateCustomer binds the request body into a model.Customer and rejects
// it before the handler runs when the company name is empty or a field rule
// fails.
func ValidateCustomer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var cust model.Customer
			if err := (&echo.DefaultBinder{}).BindBody(c, &cust); err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
			}

			if cust.CompanyName == "" {
				return ValidationProblem(c, map[string][]string{
					"CompanyName": {"CompanyName cannot be empty"},
				})
			}

			if err := c.Validate(&cust); err != nil {
				var verrs validator.ValidationErrors
				if !errors.As(err, &verrs) {
					return err
				}
				return ValidationProblem(c, fieldErrors(verrs))
			}

			c.Set(ctxCustomer, cust)
			return next(c)
		}
	}
}

// DeleteRequest is the validated input of the delete route.
type DeleteRequest struct {
	ID uuid.UUID `validate:"required"`
}

// ValidateDelete rejects the nil UUID.
func ValidateDelete() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, _ := IDFromCtx(c)
			if err := c.Validate(&DeleteRequest{ID: id}); err != nil {
				return ValidationProblem(c, map[string][]string{"Id": {"Id is required."}})
			}
			return next(c)
		}
	}
}

// fieldErrors groups messages by field path without the root struct name,
// e.g. "CompanyName" or "Projects[0].ProjectName".
func fieldErrors(verrs validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := fe.StructNamespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		out[field] = append(out[field], message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s cannot be empty", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
