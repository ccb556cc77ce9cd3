package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/splitmate-app/splitmate-backend/handlers"
	"github.com/splitmate-app/splitmate-backend/middleware"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine, jwtSecret string) {
	handlers.InitHandlers()

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(jwtSecret))

	groups := api.Group("/groups")
	{
		groups.POST("", middleware.Authorize(middleware.PermWrite), handlers.CreateGroup)
		groups.GET("", middleware.Authorize(middleware.PermRead), handlers.ListGroups)
		groups.GET("/:groupId", middleware.Authorize(middleware.PermRead), handlers.GetGroup)
		groups.PUT("/:groupId", middleware.Authorize(middleware.PermWrite), handlers.UpdateGroup)
		groups.DELETE("/:groupId", middleware.Authorize(middleware.PermWrite), handlers.DeleteGroup)

		groups.POST("/:groupId/members", middleware.Authorize(middleware.PermWrite), handlers.AddMembers)
		groups.DELETE("/:groupId/members", middleware.Authorize(middleware.PermWrite), handlers.RemoveMembers)

		groups.POST("/:groupId/settle", middleware.Authorize(middleware.PermWrite), handlers.SettleGroup)
		groups.GET("/:groupId/audit", middleware.Authorize(middleware.PermRead), handlers.GetAudit)

		groups.GET("/:groupId/balance", middleware.Authorize(middleware.PermRead), handlers.GetBalance)
		groups.GET("/:groupId/balance-summary", middleware.Authorize(middleware.PermRead), handlers.GetGroupBalanceSummary)
		groups.GET("/:groupId/statistics", middleware.Authorize(middleware.PermRead), handlers.GetStatistics)
		groups.GET("/:groupId/export", middleware.Authorize(middleware.PermRead), handlers.ExportGroupReport)

		groups.GET("/:groupId/expenses", middleware.Authorize(middleware.PermRead), handlers.ListGroupExpenses)
		groups.GET("/:groupId/expenses/category/:category", middleware.Authorize(middleware.PermRead), handlers.ListExpensesByCategory)
		groups.GET("/:groupId/expenses/date-range", middleware.Authorize(middleware.PermRead), handlers.ListExpensesByDateRange)
	}

	expenses := api.Group("/expenses")
	{
		expenses.POST("", middleware.Authorize(middleware.PermWrite), handlers.CreateExpense)
		expenses.GET("/:expenseId", middleware.Authorize(middleware.PermRead), handlers.GetExpense)
		expenses.PUT("/:expenseId", middleware.Authorize(middleware.PermWrite), handlers.UpdateExpense)
		expenses.DELETE("/:expenseId", middleware.Authorize(middleware.PermWrite), handlers.DeleteExpense)

		expenses.PATCH("/:expenseId/paid", middleware.Authorize(middleware.PermWrite), handlers.MarkSplitPaid)
		expenses.PATCH("/:expenseId/settle", middleware.Authorize(middleware.PermWrite), handlers.SettleExpense)
	}

	users := api.Group("/users")
	{
		users.GET("/expenses", middleware.Authorize(middleware.PermRead), handlers.GetMyExpenses)
		users.GET("/financial-summary", middleware.Authorize(middleware.PermRead), handlers.GetFinancialSummary)
	}
}
