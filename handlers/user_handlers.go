package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/splitmate-app/splitmate-backend/middleware"
	"github.com/splitmate-app/splitmate-backend/utils"
)

// GetMyExpenses lists every expense the caller is involved in
func GetMyExpenses(c *gin.Context) {
	expenses, err := handlerServices.ExpenseService.ListByUser(middleware.CurrentUser(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, expenses)
}

// GetFinancialSummary rolls up the caller's balances across all their groups
func GetFinancialSummary(c *gin.Context) {
	summary, err := handlerServices.BalanceService.GetUserFinancialSummary(middleware.CurrentUser(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, summary)
}
