package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/splitmate-app/splitmate-backend/middleware"
	"github.com/splitmate-app/splitmate-backend/models"
	"github.com/splitmate-app/splitmate-backend/utils"
)

// CreateExpense creates a new expense paid by the caller
func CreateExpense(c *gin.Context) {
	var request models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	expense, err := handlerServices.ExpenseService.CreateExpense(middleware.CurrentUser(c), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleCreated(c, gin.H{
		"message": "Expense created successfully",
		"expense": expense,
	})
}

// GetExpense retrieves a single expense
func GetExpense(c *gin.Context) {
	expense, err := handlerServices.ExpenseService.GetExpense(c.Param("expenseId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, expense)
}

// UpdateExpense merges changes into an expense
func UpdateExpense(c *gin.Context) {
	var request models.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	expense, err := handlerServices.ExpenseService.UpdateExpense(middleware.CurrentUser(c), c.Param("expenseId"), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{
		"message": "Expense updated successfully",
		"expense": expense,
	})
}

// DeleteExpense removes an expense
func DeleteExpense(c *gin.Context) {
	if err := handlerServices.ExpenseService.DeleteExpense(middleware.CurrentUser(c), c.Param("expenseId")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"message": "Expense deleted successfully"})
}

// MarkSplitPaid marks the caller's split line on the expense as paid
func MarkSplitPaid(c *gin.Context) {
	expense, err := handlerServices.SettlementService.MarkSplitPaid(middleware.CurrentUser(c), c.Param("expenseId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{
		"message": "Marked as paid successfully",
		"expense": expense,
	})
}

// SettleExpense marks every split line of the expense as paid
func SettleExpense(c *gin.Context) {
	expense, err := handlerServices.SettlementService.SettleExpense(middleware.CurrentUser(c), c.Param("expenseId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{
		"message": "Expense settled successfully",
		"expense": expense,
	})
}

// ListGroupExpenses lists a group's expenses
func ListGroupExpenses(c *gin.Context) {
	expenses, err := handlerServices.ExpenseService.ListByGroup(middleware.CurrentUser(c), c.Param("groupId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, expenses)
}

// ListExpensesByCategory lists a group's expenses of one category
func ListExpensesByCategory(c *gin.Context) {
	expenses, err := handlerServices.ExpenseService.ListByCategory(
		middleware.CurrentUser(c), c.Param("groupId"), c.Param("category"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, expenses)
}

// ListExpensesByDateRange lists a group's expenses within a date range
func ListExpensesByDateRange(c *gin.Context) {
	var request models.DateRangeRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError("Start date and end date are required"))
		return
	}

	expenses, err := handlerServices.ExpenseService.ListByDateRange(
		middleware.CurrentUser(c), c.Param("groupId"), request.StartDate, request.EndDate)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, expenses)
}

// GetStatistics aggregates a group's expenses by category
func GetStatistics(c *gin.Context) {
	statistics, err := handlerServices.ExpenseService.GetStatistics(middleware.CurrentUser(c), c.Param("groupId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, statistics)
}
