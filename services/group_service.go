package services

import (
	"time"

	"github.com/splitmate-app/splitmate-backend/models"
	"github.com/splitmate-app/splitmate-backend/utils"
)

// GroupService owns group rosters and metadata
type GroupService struct {
	groups GroupStore
}

// NewGroupService creates a new GroupService
func NewGroupService(groups GroupStore) *GroupService {
	return &GroupService{groups: groups}
}

// CreateGroup creates a group with the caller as admin. The member list is
// de-duplicated with the admin folded in.
func (s *GroupService) CreateGroup(user models.Principal, request *models.CreateGroupRequest) (*models.Group, error) {
	if err := utils.ValidateRequired(request.Name, "name"); err != nil {
		return nil, err
	}

	members := append([]string{user.Email}, request.MembersEmail...)

	now := time.Now().UTC()
	group := &models.Group{
		ID:           utils.GenerateID(),
		Name:         request.Name,
		Description:  request.Description,
		Thumbnail:    request.Thumbnail,
		AdminEmail:   utils.NormalizeEmail(user.Email),
		MembersEmail: utils.DedupeEmails(members),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.groups.Insert(group); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	return group, nil
}

// GetGroup retrieves a group by ID
func (s *GroupService) GetGroup(groupID string) (*models.Group, error) {
	group, err := s.groups.GetByID(groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if group == nil {
		return nil, utils.NewNotFoundError("Group")
	}
	return group, nil
}

// GetGroupsByUser lists every group the caller belongs to
func (s *GroupService) GetGroupsByUser(user models.Principal) ([]*models.Group, error) {
	groups, err := s.groups.GetByMember(user.Email)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return groups, nil
}

// GetGroupsBySettled lists groups filtered by settlement state
func (s *GroupService) GetGroupsBySettled(settled bool) ([]*models.Group, error) {
	groups, err := s.groups.GetBySettled(settled)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return groups, nil
}

// UpdateGroup updates group metadata. Admin only.
func (s *GroupService) UpdateGroup(user models.Principal, groupID string, request *models.UpdateGroupRequest) (*models.Group, error) {
	group, err := s.adminGroup(user, groupID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		group.Name = *request.Name
	}
	if request.Description != nil {
		group.Description = *request.Description
	}
	if request.Thumbnail != nil {
		group.Thumbnail = *request.Thumbnail
	}
	if err := utils.ValidateRequired(group.Name, "name"); err != nil {
		return nil, err
	}
	group.UpdatedAt = time.Now().UTC()

	found, err := s.groups.Update(group)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	if !found {
		return nil, utils.NewNotFoundError("Group")
	}
	return group, nil
}

// AddMembers adds emails to the group roster (set union). Admin only.
func (s *GroupService) AddMembers(user models.Principal, groupID string, emails []string) (*models.Group, error) {
	if _, err := s.adminGroup(user, groupID); err != nil {
		return nil, err
	}
	if err := utils.ValidateNotEmpty(emails, "emails"); err != nil {
		return nil, err
	}

	if err := s.groups.AddMembers(groupID, utils.DedupeEmails(emails)); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	return s.GetGroup(groupID)
}

// RemoveMembers removes emails from the roster (set difference). Admin only.
// Removal only affects future split eligibility: historical split lines keep
// the removed identity and still count toward balances.
func (s *GroupService) RemoveMembers(user models.Principal, groupID string, emails []string) (*models.Group, error) {
	if _, err := s.adminGroup(user, groupID); err != nil {
		return nil, err
	}
	if err := utils.ValidateNotEmpty(emails, "emails"); err != nil {
		return nil, err
	}

	if err := s.groups.RemoveMembers(groupID, utils.NormalizeEmails(emails)); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	return s.GetGroup(groupID)
}

// DeleteGroup permanently removes a group and its expenses. Admin only.
func (s *GroupService) DeleteGroup(user models.Principal, groupID string) error {
	if _, err := s.adminGroup(user, groupID); err != nil {
		return err
	}

	found, err := s.groups.Delete(groupID)
	if err != nil {
		return utils.NewInternalError("Failed to delete group")
	}
	if !found {
		return utils.NewNotFoundError("Group")
	}
	return nil
}

// LastSettled is the audit view of a group's settlement state
type LastSettled struct {
	GroupID   string     `json:"groupId"`
	IsSettled bool       `json:"isSettled"`
	SettledAt *time.Time `json:"settledAt,omitempty"`
}

// GetLastSettled returns when a group was last settled, if ever
func (s *GroupService) GetLastSettled(groupID string) (*LastSettled, error) {
	group, err := s.GetGroup(groupID)
	if err != nil {
		return nil, err
	}
	return &LastSettled{
		GroupID:   group.ID,
		IsSettled: group.IsSettled,
		SettledAt: group.SettledAt,
	}, nil
}

// adminGroup fetches a group and verifies the caller is its admin
func (s *GroupService) adminGroup(user models.Principal, groupID string) (*models.Group, error) {
	group, err := s.groups.GetByID(groupID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if group == nil {
		return nil, utils.NewNotFoundError("Group")
	}
	if !group.IsAdmin(user.Email) {
		return nil, utils.NewForbiddenError(utils.ErrNotGroupAdmin)
	}
	return group, nil
}
