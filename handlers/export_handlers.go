package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dailyudhari/udhari-backend/middleware"
	"github.com/dailyudhari/udhari-backend/utils"
)

// ExportGroup streams a group's expense report as an .xlsx download
func ExportGroup(c *gin.Context) {
	groupID, err := pathGroupID(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	f, filename, err := handlerServices.ExportService.ExportGroupToExcel(groupID, middleware.UserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
