package handlers

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRoutes(t *testing.T) {
	e := echo.New()
	guarded := map[string]bool{}
	requireAuth := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			guarded[c.Request().Method+" "+c.Path()] = true
			return c.NoContent(http.StatusUnauthorized)
		}
	}

	RegisterRoutes(e, Handlers{
		Auth:    &AuthHandler{},
		Expense: &ExpenseHandler{},
		Income:  &IncomeHandler{},
		Budget:  &BudgetHandler{},
		Report:  &ReportHandler{},
		Dev:     &DevHandler{},
		Health:  &HealthCheckHandler{},
	}, requireAuth)

	var routes []string
	for _, r := range e.Routes() {
		routes = append(routes, r.Method+" "+r.Path)
	}
	sort.Strings(routes)

	for _, want := range []string{
		"GET /health",
		"GET /metrics",
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/refresh",
		"POST /api/v1/auth/logout",
		"GET /api/v1/auth/me",
		"PUT /api/v1/auth/me/monthly-income",
		"POST /api/v1/expenses",
		"GET /api/v1/expenses",
		"GET /api/v1/expenses/summary/monthly",
		"GET /api/v1/expenses/:id",
		"PUT /api/v1/expenses/:id",
		"DELETE /api/v1/expenses/:id",
		"GET /api/v1/income/summary/monthly",
		"DELETE /api/v1/income/:id",
		"PUT /api/v1/budgets",
		"GET /api/v1/budgets/status",
		"DELETE /api/v1/budgets/:id",
		"GET /api/v1/reports/dashboard",
		"GET /api/v1/reports/trend",
		"POST /api/v1/dev/generate-demo-data",
	} {
		assert.Contains(t, routes, want)
	}

	// protected routes never reach their handler without auth
	for _, target := range []string{"/api/v1/expenses/summary/monthly", "/api/v1/reports/trend", "/api/v1/budgets/status"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
	assert.True(t, guarded["GET /api/v1/expenses/summary/monthly"])
}

func TestRegisterRoutes_MetricsIsPublic(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e, Handlers{
		Auth: &AuthHandler{}, Expense: &ExpenseHandler{}, Income: &IncomeHandler{},
		Budget: &BudgetHandler{}, Report: &ReportHandler{}, Dev: &DevHandler{}, Health: &HealthCheckHandler{},
	}, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error { return c.NoContent(http.StatusUnauthorized) }
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
