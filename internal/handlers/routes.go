package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the route handlers of the API
type Handlers struct {
	Auth    *AuthHandler
	Expense *ExpenseHandler
	Income  *IncomeHandler
	Budget  *BudgetHandler
	Report  *ReportHandler
	Dev     *DevHandler
	Health  *HealthCheckHandler
}

// RegisterRoutes mounts the API under /api/v1. requireAuth guards every
// route except registration, login, refresh, health and metrics.
func RegisterRoutes(e *echo.Echo, h Handlers, requireAuth echo.MiddlewareFunc) {
	e.GET("/health", h.Health.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)
	auth.POST("/logout", h.Auth.Logout, requireAuth)
	auth.GET("/me", h.Auth.Me, requireAuth)
	auth.PUT("/me/monthly-income", h.Auth.UpdateMonthlyIncome, requireAuth)

	expenses := api.Group("/expenses", requireAuth)
	expenses.POST("", h.Expense.Create)
	expenses.GET("", h.Expense.List)
	expenses.GET("/summary/monthly", h.Expense.MonthlySummary)
	expenses.GET("/:id", h.Expense.Get)
	expenses.PUT("/:id", h.Expense.Update)
	expenses.DELETE("/:id", h.Expense.Delete)

	income := api.Group("/income", requireAuth)
	income.POST("", h.Income.Create)
	income.GET("", h.Income.List)
	income.GET("/summary/monthly", h.Income.MonthlySummary)
	income.GET("/:id", h.Income.Get)
	income.PUT("/:id", h.Income.Update)
	income.DELETE("/:id", h.Income.Delete)

	budgets := api.Group("/budgets", requireAuth)
	budgets.PUT("", h.Budget.Upsert)
	budgets.GET("", h.Budget.List)
	budgets.GET("/status", h.Budget.Status)
	budgets.DELETE("/:id", h.Budget.Delete)

	reports := api.Group("/reports", requireAuth)
	reports.GET("/dashboard", h.Report.Dashboard)
	reports.GET("/trend", h.Report.Trend)

	dev := api.Group("/dev", requireAuth)
	dev.POST("/generate-demo-data", h.Dev.GenerateDemoData)
}
