package service

import (
	"errors"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/lifeboard/lifeboard-backend/pkg/logger"
	"github.com/lifeboard/lifeboard-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrHouseholdNotFound    = errors.New("household not found")
	ErrHouseholdNotEmpty    = errors.New("current household still has other members")
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationNotYours   = errors.New("invitation addressed to a different email")
	ErrInvitationNotPending = errors.New("invitation is no longer pending")
	ErrOwnerCannotLeave     = errors.New("owner cannot leave the household")
	ErrAlreadyInHousehold   = errors.New("user already belongs to that household")
)

type HouseholdService interface {
	Get(householdID uint) (*model.Household, error)
	Rename(householdID uint, name string) (*model.Household, error)
	Members(householdID uint) ([]model.User, error)

	Invite(householdID, invitedByID uint, email string) (*model.Invitation, error)
	ListInvitations(householdID uint) ([]model.Invitation, error)
	PendingForUser(email string) ([]model.Invitation, error)
	Accept(code string, user *model.User) (*model.Household, error)
	Decline(code string, user *model.User) error
	Leave(user *model.User) (*model.Household, error)
}

type householdService struct {
	householdRepo repository.HouseholdRepository
	userRepo      repository.UserRepository
}

func NewHouseholdService(householdRepo repository.HouseholdRepository, userRepo repository.UserRepository) HouseholdService {
	return &householdService{householdRepo: householdRepo, userRepo: userRepo}
}

func (s *householdService) Get(householdID uint) (*model.Household, error) {
	household, err := s.householdRepo.FindByID(householdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHouseholdNotFound
		}
		return nil, err
	}
	return household, nil
}

func (s *householdService) Rename(householdID uint, name string) (*model.Household, error) {
	household, err := s.Get(householdID)
	if err != nil {
		return nil, err
	}

	household.Name = name
	if err := s.householdRepo.Update(household); err != nil {
		return nil, err
	}
	return household, nil
}

func (s *householdService) Members(householdID uint) ([]model.User, error) {
	return s.userRepo.ListByHousehold(householdID)
}

func (s *householdService) Invite(householdID, invitedByID uint, email string) (*model.Invitation, error) {
	invitation := &model.Invitation{
		HouseholdID: householdID,
		Email:       email,
		Code:        util.NewInviteCode(),
		Status:      model.InvitationPending,
		InvitedByID: invitedByID,
	}
	if err := s.householdRepo.CreateInvitation(invitation); err != nil {
		return nil, err
	}

	logger.Info("Invitation created", map[string]interface{}{
		"household_id": householdID,
		"email":        email,
	})
	return invitation, nil
}

func (s *householdService) ListInvitations(householdID uint) ([]model.Invitation, error) {
	return s.householdRepo.ListInvitations(householdID)
}

func (s *householdService) PendingForUser(email string) ([]model.Invitation, error) {
	return s.householdRepo.ListInvitationsForEmail(email)
}

// Accept moves the user into the invited household as a member. Only a
// user who is alone in their current household may accept; the abandoned
// household is then soft-deleted. Anything else would strand the old
// household's members without an owner.
func (s *householdService) Accept(code string, user *model.User) (*model.Household, error) {
	invitation, err := s.pendingInvitation(code, user)
	if err != nil {
		return nil, err
	}
	if invitation.HouseholdID == user.HouseholdID {
		return nil, ErrAlreadyInHousehold
	}

	members, err := s.userRepo.ListByHousehold(user.HouseholdID)
	if err != nil {
		return nil, err
	}
	if len(members) > 1 {
		return nil, ErrHouseholdNotEmpty
	}

	household, err := s.householdRepo.FindByID(invitation.HouseholdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHouseholdNotFound
		}
		return nil, err
	}

	previousID := user.HouseholdID
	user.HouseholdID = household.ID
	user.Role = model.RoleMember
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	invitation.Status = model.InvitationAccepted
	if err := s.householdRepo.UpdateInvitation(invitation); err != nil {
		return nil, err
	}

	s.retireIfEmpty(previousID)

	logger.Info("Invitation accepted", map[string]interface{}{
		"user_id":      user.ID,
		"household_id": household.ID,
	})
	return household, nil
}

func (s *householdService) Decline(code string, user *model.User) error {
	invitation, err := s.pendingInvitation(code, user)
	if err != nil {
		return err
	}

	invitation.Status = model.InvitationDeclined
	return s.householdRepo.UpdateInvitation(invitation)
}

// Leave moves a member out into a fresh single-person household. Owners
// must transfer or dissolve first.
func (s *householdService) Leave(user *model.User) (*model.Household, error) {
	if user.Role == model.RoleOwner {
		return nil, ErrOwnerCannotLeave
	}

	household := &model.Household{Name: user.Name + "'s household"}
	if err := s.householdRepo.Create(household); err != nil {
		return nil, err
	}

	user.HouseholdID = household.ID
	user.Role = model.RoleOwner
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("User left household", map[string]interface{}{
		"user_id":          user.ID,
		"new_household_id": household.ID,
	})
	return household, nil
}

func (s *householdService) pendingInvitation(code string, user *model.User) (*model.Invitation, error) {
	invitation, err := s.householdRepo.FindInvitationByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	if invitation.Email != user.Email {
		return nil, ErrInvitationNotYours
	}
	if invitation.Status != model.InvitationPending {
		return nil, ErrInvitationNotPending
	}
	return invitation, nil
}

func (s *householdService) retireIfEmpty(householdID uint) {
	members, err := s.userRepo.ListByHousehold(householdID)
	if err != nil {
		logger.Warn("Failed to check old household membership", map[string]interface{}{
			"household_id": householdID,
		})
		return
	}
	if len(members) == 0 {
		if err := s.householdRepo.Delete(householdID); err != nil {
			logger.Warn("Failed to retire empty household", map[string]interface{}{
				"household_id": householdID,
			})
		}
	}
}
