package service

import (
	"testing"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNotebookService(database *gorm.DB) NotebookService {
	return NewNotebookService(repository.NewNotebookRepository(database))
}

func TestNotebookPagesKeepPositionOrder(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "notes@example.com")
	svc := newNotebookService(database)

	notebook, err := svc.Create(user.HouseholdID, user.ID, "Recipes")
	require.NoError(t, err)

	for _, title := range []string{"Soup", "Bread", "Pie"} {
		_, err := svc.AddPage(user.HouseholdID, notebook.ID, title, "")
		require.NoError(t, err)
	}

	loaded, err := svc.Get(user.HouseholdID, notebook.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Pages, 3)
	assert.Equal(t, "Soup", loaded.Pages[0].Title)
	assert.Equal(t, "Pie", loaded.Pages[2].Title)

	// Move the last page to the front.
	front := 0
	_, err = svc.UpdatePage(user.HouseholdID, notebook.ID, loaded.Pages[2].ID, nil, nil, &front)
	require.NoError(t, err)
	back := 2
	_, err = svc.UpdatePage(user.HouseholdID, notebook.ID, loaded.Pages[0].ID, nil, nil, &back)
	require.NoError(t, err)

	reloaded, err := svc.Get(user.HouseholdID, notebook.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pie", reloaded.Pages[0].Title)
}

func TestNotebookRenameAndPageEdits(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "notes@example.com")
	svc := newNotebookService(database)

	notebook, err := svc.Create(user.HouseholdID, user.ID, "Drafts")
	require.NoError(t, err)

	renamed, err := svc.Rename(user.HouseholdID, notebook.ID, "Journal")
	require.NoError(t, err)
	assert.Equal(t, "Journal", renamed.Title)

	page, err := svc.AddPage(user.HouseholdID, notebook.ID, "Day 1", "Slept in.")
	require.NoError(t, err)

	body := "Slept in. Made pancakes."
	updated, err := svc.UpdatePage(user.HouseholdID, notebook.ID, page.ID, nil, &body, nil)
	require.NoError(t, err)
	assert.Equal(t, body, updated.Body)
	assert.Equal(t, "Day 1", updated.Title)
}

func TestDeleteNotebookRemovesPages(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "notes@example.com")
	svc := newNotebookService(database)

	notebook, err := svc.Create(user.HouseholdID, user.ID, "Scratch")
	require.NoError(t, err)
	page, err := svc.AddPage(user.HouseholdID, notebook.ID, "Only page", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(user.HouseholdID, notebook.ID))

	_, err = svc.Get(user.HouseholdID, notebook.ID)
	assert.ErrorIs(t, err, ErrNotebookNotFound)

	var pages int64
	database.Model(&model.NotebookPage{}).Where("id = ?", page.ID).Count(&pages)
	assert.Zero(t, pages)
}

func TestNotebookScopedToHousehold(t *testing.T) {
	database := setupDB(t)
	user := seedUser(t, database, "notes@example.com")
	neighbor := seedUser(t, database, "neighbor@example.com")
	svc := newNotebookService(database)

	notebook, err := svc.Create(user.HouseholdID, user.ID, "Private")
	require.NoError(t, err)

	_, err = svc.Get(neighbor.HouseholdID, notebook.ID)
	assert.ErrorIs(t, err, ErrNotebookNotFound)
	_, err = svc.AddPage(neighbor.HouseholdID, notebook.ID, "Intruder", "")
	assert.ErrorIs(t, err, ErrNotebookNotFound)
}
