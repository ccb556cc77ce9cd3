package handlers

import (
	"github.com/splitmate-app/splitmate-backend/repository"
	"github.com/splitmate-app/splitmate-backend/services"
)

// HandlerServices contains all service dependencies
type HandlerServices struct {
	GroupService      *services.GroupService
	ExpenseService    *services.ExpenseService
	BalanceService    *services.BalanceService
	SettlementService *services.SettlementService
	ExportService     *services.ExportService
}

// NewHandlerServices wires the services over the SQL repositories
func NewHandlerServices() *HandlerServices {
	expenseRepo := repository.NewExpenseRepository()
	groupRepo := repository.NewGroupRepository()

	return &HandlerServices{
		GroupService:      services.NewGroupService(groupRepo),
		ExpenseService:    services.NewExpenseService(expenseRepo, groupRepo),
		BalanceService:    services.NewBalanceService(expenseRepo, groupRepo),
		SettlementService: services.NewSettlementService(expenseRepo, groupRepo),
		ExportService:     services.NewExportService(expenseRepo, groupRepo),
	}
}

var handlerServices *HandlerServices

// InitHandlers initializes the handler services
func InitHandlers() {
	handlerServices = NewHandlerServices()
}
