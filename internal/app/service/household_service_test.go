package service

import (
	"testing"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/lifeboard/lifeboard-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newHouseholdService(database *gorm.DB) HouseholdService {
	return NewHouseholdService(
		repository.NewHouseholdRepository(database),
		repository.NewUserRepository(database),
	)
}

func TestInvitationFlow(t *testing.T) {
	database := setupDB(t)
	owner := seedUser(t, database, "owner@example.com")
	invitee := seedUser(t, database, "invitee@example.com")
	svc := newHouseholdService(database)

	invitation, err := svc.Invite(owner.HouseholdID, owner.ID, invitee.Email)
	require.NoError(t, err)
	assert.Equal(t, model.InvitationPending, invitation.Status)
	assert.NotEmpty(t, invitation.Code)

	pending, err := svc.PendingForUser(invitee.Email)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	oldHouseholdID := invitee.HouseholdID
	household, err := svc.Accept(invitation.Code, invitee)
	require.NoError(t, err)
	assert.Equal(t, owner.HouseholdID, household.ID)
	assert.Equal(t, owner.HouseholdID, invitee.HouseholdID)
	assert.Equal(t, model.RoleMember, invitee.Role)

	// The invitee's old single-person household is retired.
	var old model.Household
	err = database.First(&old, oldHouseholdID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// A consumed invitation cannot be accepted again.
	_, err = svc.Accept(invitation.Code, invitee)
	assert.ErrorIs(t, err, ErrInvitationNotPending)
}

func TestAcceptRequiresSoloHousehold(t *testing.T) {
	database := setupDB(t)
	host := seedUser(t, database, "host@example.com")
	busyOwner := seedUser(t, database, "busy@example.com")
	svc := newHouseholdService(database)

	// busyOwner's household has a second member.
	housemate := &model.User{
		HouseholdID:  busyOwner.HouseholdID,
		Email:        "housemate@example.com",
		PasswordHash: "not-a-real-hash",
		Name:         "Housemate",
		Role:         model.RoleMember,
		FeedToken:    util.NewFeedToken(),
	}
	require.NoError(t, database.Create(housemate).Error)

	invitation, err := svc.Invite(host.HouseholdID, host.ID, busyOwner.Email)
	require.NoError(t, err)

	_, err = svc.Accept(invitation.Code, busyOwner)
	assert.ErrorIs(t, err, ErrHouseholdNotEmpty)

	// Nothing moved: the owner stays put and their household survives
	// with both members.
	var reloaded model.User
	require.NoError(t, database.First(&reloaded, busyOwner.ID).Error)
	assert.Equal(t, model.RoleOwner, reloaded.Role)

	members, err := svc.Members(reloaded.HouseholdID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	// Once the housemate leaves, the invitation becomes acceptable.
	_, err = svc.Leave(housemate)
	require.NoError(t, err)
	_, err = svc.Accept(invitation.Code, busyOwner)
	assert.NoError(t, err)
}

func TestAcceptRejectsWrongEmail(t *testing.T) {
	database := setupDB(t)
	owner := seedUser(t, database, "owner@example.com")
	invitee := seedUser(t, database, "invitee@example.com")
	bystander := seedUser(t, database, "bystander@example.com")
	svc := newHouseholdService(database)

	invitation, err := svc.Invite(owner.HouseholdID, owner.ID, invitee.Email)
	require.NoError(t, err)

	_, err = svc.Accept(invitation.Code, bystander)
	assert.ErrorIs(t, err, ErrInvitationNotYours)
	_, err = svc.Accept("no-such-code", invitee)
	assert.ErrorIs(t, err, ErrInvitationNotFound)
}

func TestDecline(t *testing.T) {
	database := setupDB(t)
	owner := seedUser(t, database, "owner@example.com")
	invitee := seedUser(t, database, "invitee@example.com")
	svc := newHouseholdService(database)

	invitation, err := svc.Invite(owner.HouseholdID, owner.ID, invitee.Email)
	require.NoError(t, err)
	require.NoError(t, svc.Decline(invitation.Code, invitee))

	// Still in their own household.
	assert.NotEqual(t, owner.HouseholdID, invitee.HouseholdID)
	_, err = svc.Accept(invitation.Code, invitee)
	assert.ErrorIs(t, err, ErrInvitationNotPending)
}

func TestLeave(t *testing.T) {
	database := setupDB(t)
	owner := seedUser(t, database, "owner@example.com")
	invitee := seedUser(t, database, "invitee@example.com")
	svc := newHouseholdService(database)

	invitation, err := svc.Invite(owner.HouseholdID, owner.ID, invitee.Email)
	require.NoError(t, err)
	_, err = svc.Accept(invitation.Code, invitee)
	require.NoError(t, err)

	// The owner is stuck; the member gets a fresh household of their own.
	_, err = svc.Leave(owner)
	assert.ErrorIs(t, err, ErrOwnerCannotLeave)

	fresh, err := svc.Leave(invitee)
	require.NoError(t, err)
	assert.NotEqual(t, owner.HouseholdID, fresh.ID)
	assert.Equal(t, fresh.ID, invitee.HouseholdID)
	assert.Equal(t, model.RoleOwner, invitee.Role)
}
