package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dailyudhari/udhari-backend/middleware"
	"github.com/dailyudhari/udhari-backend/models"
	"github.com/dailyudhari/udhari-backend/utils"
)

// Register creates a new user account
func Register(c *gin.Context) {
	var request models.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	response, err := handlerServices.AuthService.Register(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login authenticates a user by email or mobile number
func Login(c *gin.Context) {
	var request models.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	response, err := handlerServices.AuthService.Login(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, response)
}

// SearchUser looks up a user by email or mobile number
func SearchUser(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		utils.HandleError(c, utils.NewValidationError("search query is required"))
		return
	}

	user, err := handlerServices.AuthService.SearchUser(query)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, user)
}

// GetFriends lists co-members across shared groups with net balances
func GetFriends(c *gin.Context) {
	friends, err := handlerServices.BalanceService.GetFriends(middleware.UserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if friends == nil {
		friends = []models.FriendBalance{}
	}
	utils.HandleSuccess(c, friends)
}
