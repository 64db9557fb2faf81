package service

import (
	"testing"

	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTagService(database *gorm.DB) TagService {
	return NewTagService(repository.NewTagRepository(database))
}

func TestTagNameUniquePerHousehold(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "tags@example.com")
	neighbor := seedUser(t, database, "neighbor@example.com")
	svc := newTagService(database)

	_, err := svc.Create(user.HouseholdID, "urgent", "#ff0000")
	require.NoError(t, err)

	_, err = svc.Create(user.HouseholdID, "urgent", "#00ff00")
	assert.ErrorIs(t, err, ErrTagAlreadyExists)

	// Same name in a different household is fine.
	_, err = svc.Create(neighbor.HouseholdID, "urgent", "#0000ff")
	assert.NoError(t, err)
}

func TestTagRenameCollision(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "tags@example.com")
	svc := newTagService(database)

	_, err := svc.Create(user.HouseholdID, "urgent", "")
	require.NoError(t, err)
	later, err := svc.Create(user.HouseholdID, "later", "")
	require.NoError(t, err)

	name := "urgent"
	_, err = svc.Update(user.HouseholdID, later.ID, &name, nil)
	assert.ErrorIs(t, err, ErrTagAlreadyExists)

	// Recoloring without renaming never collides.
	color := "#abcdef"
	updated, err := svc.Update(user.HouseholdID, later.ID, nil, &color)
	require.NoError(t, err)
	assert.Equal(t, "#abcdef", updated.Color)
}

func TestTagDelete(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "tags@example.com")
	svc := newTagService(database)

	tag, err := svc.Create(user.HouseholdID, "urgent", "")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(user.HouseholdID, tag.ID))

	_, err = svc.Get(user.HouseholdID, tag.ID)
	assert.ErrorIs(t, err, ErrTagNotFound)
}
