package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dailyudhari/udhari-backend/middleware"
	"github.com/dailyudhari/udhari-backend/models"
	"github.com/dailyudhari/udhari-backend/utils"
)

// CreateGroup creates a group with the caller as its first member
func CreateGroup(c *gin.Context) {
	var request models.CreateGroupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	group, err := handlerServices.GroupService.CreateGroup(request.Name, middleware.UserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, group)
}

// GetUserGroups lists the caller's groups
func GetUserGroups(c *gin.Context) {
	groups, err := handlerServices.GroupService.GetUserGroups(middleware.UserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, groups)
}

// GetGroupMembers lists the members of a group the caller belongs to
func GetGroupMembers(c *gin.Context) {
	groupID, err := pathGroupID(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	members, err := handlerServices.GroupService.GetGroupMembers(groupID, middleware.UserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, members)
}

// RotateSettlementKey reissues the caller's settlement key for a group
func RotateSettlementKey(c *gin.Context) {
	groupID, err := pathGroupID(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	newKey, err := handlerServices.GroupService.RotateMemberKey(groupID, middleware.UserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{"settlementKey": newKey})
}

// AddGroupMember adds a user to a group by ID or mobile number
func AddGroupMember(c *gin.Context) {
	var request models.AddMemberRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	message, err := handlerServices.GroupService.AddMember(middleware.UserID(c), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{"message": message})
}
