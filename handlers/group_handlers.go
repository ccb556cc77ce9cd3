package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/splitmate-app/splitmate-backend/middleware"
	"github.com/splitmate-app/splitmate-backend/models"
	"github.com/splitmate-app/splitmate-backend/utils"
)

// CreateGroup creates a new group with the caller as admin
func CreateGroup(c *gin.Context) {
	var request models.CreateGroupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	group, err := handlerServices.GroupService.CreateGroup(middleware.CurrentUser(c), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleCreated(c, gin.H{
		"message": "Group created successfully",
		"groupId": group.ID,
		"group":   group,
	})
}

// ListGroups lists the caller's groups, optionally filtered by settlement state
func ListGroups(c *gin.Context) {
	if settled, provided := c.GetQuery("settled"); provided {
		groups, err := handlerServices.GroupService.GetGroupsBySettled(settled == "true")
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		utils.HandleSuccess(c, groups)
		return
	}

	groups, err := handlerServices.GroupService.GetGroupsByUser(middleware.CurrentUser(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, groups)
}

// GetGroup retrieves a single group
func GetGroup(c *gin.Context) {
	group, err := handlerServices.GroupService.GetGroup(c.Param("groupId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, group)
}

// UpdateGroup updates group metadata
func UpdateGroup(c *gin.Context) {
	var request models.UpdateGroupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	group, err := handlerServices.GroupService.UpdateGroup(middleware.CurrentUser(c), c.Param("groupId"), &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, group)
}

// DeleteGroup removes a group and its expenses
func DeleteGroup(c *gin.Context) {
	if err := handlerServices.GroupService.DeleteGroup(middleware.CurrentUser(c), c.Param("groupId")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"message": "Group deleted successfully"})
}

// AddMembers adds members to the group roster
func AddMembers(c *gin.Context) {
	var request models.MembersRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	group, err := handlerServices.GroupService.AddMembers(middleware.CurrentUser(c), c.Param("groupId"), request.Emails)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, group)
}

// RemoveMembers removes members from the group roster
func RemoveMembers(c *gin.Context) {
	var request models.MembersRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	group, err := handlerServices.GroupService.RemoveMembers(middleware.CurrentUser(c), c.Param("groupId"), request.Emails)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, group)
}

// SettleGroup settles every expense in the group and marks it settled
func SettleGroup(c *gin.Context) {
	result, err := handlerServices.SettlementService.SettleGroup(middleware.CurrentUser(c), c.Param("groupId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{
		"message":       "Group settled successfully",
		"group":         result.Group,
		"finalBalances": result.FinalBalances,
	})
}

// GetGroupBalanceSummary returns every member's position in the group
func GetGroupBalanceSummary(c *gin.Context) {
	summary, err := handlerServices.BalanceService.GetGroupBalanceSummary(middleware.CurrentUser(c), c.Param("groupId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, summary)
}

// GetBalance returns the caller's position in the group
func GetBalance(c *gin.Context) {
	summary, err := handlerServices.BalanceService.GetBalanceSummary(middleware.CurrentUser(c), c.Param("groupId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, summary)
}

// GetAudit returns when the group was last settled
func GetAudit(c *gin.Context) {
	lastSettled, err := handlerServices.GroupService.GetLastSettled(c.Param("groupId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"lastSettled": lastSettled})
}
