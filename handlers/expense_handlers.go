package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dailyudhari/udhari-backend/middleware"
	"github.com/dailyudhari/udhari-backend/models"
	"github.com/dailyudhari/udhari-backend/utils"
)

// AddExpense records a new expense with its splits
func AddExpense(c *gin.Context) {
	var request models.AddExpenseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	response, err := handlerServices.ExpenseService.AddExpense(middleware.UserID(c), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListExpenses returns the caller's recent expense entries
func ListExpenses(c *gin.Context) {
	groupID, err := optionalGroupID(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	entries, err := handlerServices.ExpenseService.GetExpenses(middleware.UserID(c), groupID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, entries)
}

// GetBalances returns the caller's balance summary
func GetBalances(c *gin.Context) {
	groupID, err := optionalGroupID(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	summary, err := handlerServices.BalanceService.GetBalanceSummary(middleware.UserID(c), groupID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, summary)
}
