package repository

import (
	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/pkg/logger"
	"gorm.io/gorm"
)

type HouseholdRepository interface {
	Create(household *model.Household) error
	FindByID(id uint) (*model.Household, error)
	Update(household *model.Household) error
	Delete(id uint) error

	CreateInvitation(invitation *model.Invitation) error
	FindInvitationByCode(code string) (*model.Invitation, error)
	UpdateInvitation(invitation *model.Invitation) error
	ListInvitations(householdID uint) ([]model.Invitation, error)
	ListInvitationsForEmail(email string) ([]model.Invitation, error)
}

type householdRepository struct {
	db *gorm.DB
}

func NewHouseholdRepository(db *gorm.DB) HouseholdRepository {
	return &householdRepository{db: db}
}

func (r *householdRepository) Create(household *model.Household) error {
	if err := r.db.Create(household).Error; err != nil {
		logger.Error("Failed to create household", err, map[string]interface{}{
			"name": household.Name,
		})
		return err
	}
	return nil
}

func (r *householdRepository) FindByID(id uint) (*model.Household, error) {
	var household model.Household
	if err := r.db.First(&household, id).Error; err != nil {
		return nil, err
	}
	return &household, nil
}

func (r *householdRepository) Update(household *model.Household) error {
	return r.db.Save(household).Error
}

func (r *householdRepository) Delete(id uint) error {
	return r.db.Delete(&model.Household{}, id).Error
}

func (r *householdRepository) CreateInvitation(invitation *model.Invitation) error {
	if err := r.db.Create(invitation).Error; err != nil {
		logger.Error("Failed to create invitation", err, map[string]interface{}{
			"household_id": invitation.HouseholdID,
			"email":        invitation.Email,
		})
		return err
	}
	return nil
}

func (r *householdRepository) FindInvitationByCode(code string) (*model.Invitation, error) {
	var invitation model.Invitation
	if err := r.db.Where("code = ?", code).First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *householdRepository) UpdateInvitation(invitation *model.Invitation) error {
	return r.db.Save(invitation).Error
}

func (r *householdRepository) ListInvitations(householdID uint) ([]model.Invitation, error) {
	var invitations []model.Invitation
	err := r.db.Where("household_id = ?", householdID).Order("created_at DESC").Find(&invitations).Error
	return invitations, err
}

func (r *householdRepository) ListInvitationsForEmail(email string) ([]model.Invitation, error) {
	var invitations []model.Invitation
	err := r.db.Where("email = ? AND status = ?", email, model.InvitationPending).
		Order("created_at DESC").Find(&invitations).Error
	return invitations, err
}
