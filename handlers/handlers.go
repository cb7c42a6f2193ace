package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dailyudhari/udhari-backend/services"
	"github.com/dailyudhari/udhari-backend/utils"
)

// HandlerServices contains all service dependencies
type HandlerServices struct {
	AuthService       *services.AuthService
	ExpenseService    *services.ExpenseService
	BalanceService    *services.BalanceService
	SettlementService *services.SettlementService
	SimplifyService   *services.SimplifyService
	GroupService      *services.GroupService
	ExportService     *services.ExportService
}

var handlerServices *HandlerServices

// InitHandlers wires the handler services
func InitHandlers(s *HandlerServices) {
	handlerServices = s
}

// optionalGroupID parses the groupId query parameter when present
func optionalGroupID(c *gin.Context) (*int64, error) {
	raw := c.Query("groupId")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, utils.NewValidationError("groupId must be a number")
	}
	return &id, nil
}

// pathGroupID parses the :groupId path parameter
func pathGroupID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("groupId"), 10, 64)
	if err != nil {
		return 0, utils.NewValidationError("groupId must be a number")
	}
	return id, nil
}
