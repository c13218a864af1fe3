package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jmehdipour/customers-api/internal/http/middleware"
	"github.com/jmehdipour/customers-api/internal/metrics"
	"github.com/jmehdipour/customers-api/internal/model"
	"github.com/jmehdipour/customers-api/internal/repository"
	echo "github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// WelcomeNotifier is called once for every created customer.
type WelcomeNotifier interface {
	SendWelcome(ctx context.Context, c model.Customer) error
}

func listCustomersHandler(repo repository.CustomersRepository, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		customers, err := repo.List(c.Request().Context())
		if err != nil {
			return dbError(c, log, "list", err)
		}
		metrics.CustomerOpsTotal.WithLabelValues("list", "ok").Inc()
		return c.JSON(http.StatusOK, customers)
	}
}

func getCustomerHandler(repo repository.CustomersRepository, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, _ := middleware.IDFromCtx(c)

		customer, err := repo.GetByID(c.Request().Context(), id)
		if err != nil {
			return dbError(c, log, "get", err)
		}
		if customer == nil {
			return notFound(c, "get")
		}
		metrics.CustomerOpsTotal.WithLabelValues("get", "ok").Inc()
		return c.JSON(http.StatusOK, customer)
	}
}

// createCustomerHandler stores a new customer under a fresh id with no
// projects and the default email address, then sends the welcome email.
func createCustomerHandler(repo repository.CustomersRepository, notifier WelcomeNotifier, defaultEmail string, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		in, ok := middleware.CustomerFromCtx(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		newCustomer := model.Customer{
			ID:           uuid.New(),
			CompanyName:  in.CompanyName,
			EmailAddress: defaultEmail,
			Projects:     []model.Project{},
		}

		ctx := c.Request().Context()
		if err := repo.Add(ctx, newCustomer); err != nil {
			return dbError(c, log, "create", err)
		}

		if err := notifier.SendWelcome(ctx, newCustomer); err != nil {
			metrics.CustomerOpsTotal.WithLabelValues("create", "error").Inc()
			log.Error("welcome email failed", zap.String("customer_id", newCustomer.ID.String()), zap.Error(err))
			return fmt.Errorf("send welcome email: %w", err)
		}

		metrics.CustomerOpsTotal.WithLabelValues("create", "ok").Inc()
		c.Response().Header().Set(echo.HeaderLocation, "/customers/"+newCustomer.ID.String())
		return c.JSON(http.StatusCreated, newCustomer)
	}
}

// updateCustomerHandler applies the company name and projects of the body to
// the stored customer and returns it as stored. ID and email address are kept.
func updateCustomerHandler(repo repository.CustomersRepository, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, _ := middleware.IDFromCtx(c)
		in, ok := middleware.CustomerFromCtx(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		ctx := c.Request().Context()
		existing, err := repo.GetByID(ctx, id)
		if err != nil {
			return dbError(c, log, "update", err)
		}
		if existing == nil {
			return notFound(c, "update")
		}

		updated := existing.WithChanges(in)
		updated.EnsureProjectIDs()

		if err := repo.Update(ctx, id, updated); err != nil {
			return dbError(c, log, "update", err)
		}

		// stores may normalise projects, answer with what was saved
		stored, err := repo.GetByID(ctx, id)
		if err != nil {
			return dbError(c, log, "update", err)
		}
		if stored == nil {
			return notFound(c, "update")
		}

		metrics.CustomerOpsTotal.WithLabelValues("update", "ok").Inc()
		return c.JSON(http.StatusOK, stored)
	}
}

// deleteCustomerHandler always answers 204, also for unknown ids.
func deleteCustomerHandler(repo repository.CustomersRepository, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, _ := middleware.IDFromCtx(c)

		if err := repo.DeleteByID(c.Request().Context(), id); err != nil {
			return dbError(c, log, "delete", err)
		}
		metrics.CustomerOpsTotal.WithLabelValues("delete", "ok").Inc()
		return c.NoContent(http.StatusNoContent)
	}
}

func notFound(c echo.Context, op string) error {
	metrics.CustomerOpsTotal.WithLabelValues(op, "not_found").Inc()
	return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
}

func dbError(c echo.Context, log *zap.Logger, op string, err error) error {
	metrics.CustomerOpsTotal.WithLabelValues(op, "error").Inc()
	log.Error("repository call failed", zap.String("op", op), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
}
