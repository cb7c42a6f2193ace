package services

import (
	"github.com/dailyudhari/udhari-backend/models"
	"github.com/dailyudhari/udhari-backend/repository"
	"github.com/dailyudhari/udhari-backend/utils"
)

// GroupService handles group creation and membership management
type GroupService struct {
	groupRepo *repository.GroupRepository
	userRepo  *repository.UserRepository
}

// NewGroupService creates a new group service
func NewGroupService(groupRepo *repository.GroupRepository, userRepo *repository.UserRepository) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// CreateGroup creates a group with the creator as its first member
func (s *GroupService) CreateGroup(name string, createdBy int64) (*models.Group, error) {
	if err := utils.ValidateRequired(name, "group name"); err != nil {
		return nil, err
	}
	group, err := s.groupRepo.CreateGroup(name, createdBy)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	return group, nil
}

// GetUserGroups returns all groups the user belongs to
func (s *GroupService) GetUserGroups(userID int64) ([]models.Group, error) {
	groups, err := s.groupRepo.FindByUserID(userID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if groups == nil {
		groups = []models.Group{}
	}
	return groups, nil
}

// GetGroupMembers returns the members of a group. Restricted to members.
func (s *GroupService) GetGroupMembers(groupID, requesterID int64) ([]models.GroupMember, error) {
	isMember, err := s.groupRepo.IsMember(groupID, requesterID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if !isMember {
		return nil, utils.NewNotFoundError("Group")
	}
	members, err := s.groupRepo.GetMembers(groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return members, nil
}

// AddMember adds a user to a group, by ID or by mobile number. An unknown
// mobile number is stored as a pending invitation fulfilled at registration.
func (s *GroupService) AddMember(inviterID int64, req *models.AddMemberRequest) (string, error) {
	group, err := s.groupRepo.FindByID(req.GroupID)
	if err != nil {
		return "", utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if group == nil {
		return "", utils.NewNotFoundError("Group")
	}

	if req.UserID != 0 {
		user, err := s.userRepo.FindByID(req.UserID)
		if err != nil {
			return "", utils.NewInternalError(utils.ErrFailedToRetrieve)
		}
		if user == nil {
			return "", utils.NewNotFoundError("User")
		}
		if err := s.groupRepo.AddMember(req.GroupID, req.UserID); err != nil {
			return "", utils.NewInternalError(utils.ErrFailedToStore)
		}
		return "Member added successfully", nil
	}

	if req.MobileNumber != "" {
		mobile := utils.NormalizeMobile(req.MobileNumber)
		user, err := s.userRepo.FindByMobile(mobile)
		if err != nil {
			return "", utils.NewInternalError(utils.ErrFailedToRetrieve)
		}
		if user != nil {
			if err := s.groupRepo.AddMember(req.GroupID, user.ID); err != nil {
				return "", utils.NewInternalError(utils.ErrFailedToStore)
			}
			return "Member added successfully", nil
		}
		if err := s.groupRepo.CreatePendingInvitation(req.GroupID, mobile, inviterID); err != nil {
			return "", utils.NewInternalError(utils.ErrFailedToStore)
		}
		return "Invitation saved. User will be added when they register.", nil
	}

	return "", utils.NewValidationError("either userId or mobileNumber is required")
}

// RotateMemberKey issues a fresh settlement key for the user's own membership
// in the group, invalidating the previous one.
func (s *GroupService) RotateMemberKey(groupID, userID int64) (string, error) {
	isMember, err := s.groupRepo.IsMember(groupID, userID)
	if err != nil {
		return "", utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if !isMember {
		return "", utils.NewNotFoundError("Group")
	}
	newKey, err := s.groupRepo.RotateMemberKey(nil, groupID, userID)
	if err != nil {
		return "", utils.NewInternalError(utils.ErrFailedToStore)
	}
	return newKey, nil
}
