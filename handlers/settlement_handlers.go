package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dailyudhari/udhari-backend/middleware"
	"github.com/dailyudhari/udhari-backend/models"
	"github.com/dailyudhari/udhari-backend/utils"
)

// InitiateSettlement starts a settlement from the caller to the payee
func InitiateSettlement(c *gin.Context) {
	var request models.InitiateSettlementRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	response, err := handlerServices.SettlementService.InitiateSettlement(
		middleware.UserID(c), request.PayeeID, request.Amount)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ConfirmSettlement settles a settlement with the payee's settlement key
func ConfirmSettlement(c *gin.Context) {
	var request models.ConfirmSettlementRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	if err := handlerServices.SettlementService.ConfirmSettlement(request.SettlementID, request.Key); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{"message": "Settlement confirmed and cleared."})
}

// SimplifyDebts returns the minimal transfer set for a group
func SimplifyDebts(c *gin.Context) {
	groupID, err := optionalGroupID(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if groupID == nil {
		utils.HandleError(c, utils.NewValidationError("groupId is required"))
		return
	}

	transfers, err := handlerServices.SimplifyService.SimplifyDebts(*groupID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, transfers)
}
