package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/splitmate-app/splitmate-backend/logger"
	"github.com/splitmate-app/splitmate-backend/middleware"
	"github.com/splitmate-app/splitmate-backend/utils"
)

// ExportGroupReport streams an Excel report of the group's expenses and balances
func ExportGroupReport(c *gin.Context) {
	file, filename, err := handlerServices.ExportService.ExportGroupReport(
		middleware.CurrentUser(c), c.Param("groupId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := file.Write(c.Writer); err != nil {
		logger.GetLogger().Errorw("Failed to write export", "error", err)
	}
}
