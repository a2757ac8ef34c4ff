package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railops/rakeplanner/internal/adapters/persistence"
	"github.com/railops/rakeplanner/test/helpers"
)

func stockyardModel(t *testing.T, id, code string, inventory map[string]float64) *persistence.StockyardModel {
	t.Helper()
	encoded, err := persistence.EncodeInventory(inventory)
	require.NoError(t, err)
	return &persistence.StockyardModel{
		ID:               id,
		Code:             code,
		Name:             code + " Yard",
		Location:         code,
		CapacityTonnes:   100000,
		CurrentInventory: encoded,
	}
}

func TestStockyardRepository_SaveAndFindByCode(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewStockyardRepository(db)

	require.NoError(t, repo.Save(context.Background(),
		stockyardModel(t, "sy-1", "SY001", map[string]float64{"COAL": 30000})))

	found, err := repo.FindByCode(context.Background(), "SY001")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "sy-1", found.ID)

	missing, err := repo.FindByCode(context.Background(), "SY999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStockyardRepository_FindByID(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewStockyardRepository(db)

	require.NoError(t, repo.Save(context.Background(),
		stockyardModel(t, "sy-1", "SY001", nil)))

	found, err := repo.FindByID(context.Background(), "sy-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "SY001", found.Code)
}

func TestStockyardRepository_ListAllDecodesInventory(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewStockyardRepository(db)

	require.NoError(t, repo.Save(context.Background(),
		stockyardModel(t, "sy-2", "SY002", map[string]float64{"ORE": 1500})))
	require.NoError(t, repo.Save(context.Background(),
		stockyardModel(t, "sy-1", "SY001", map[string]float64{"COAL": 30000, "ORE": 500})))

	stockyards, err := repo.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, stockyards, 2)
	// Ordered by code
	assert.Equal(t, "SY001", stockyards[0].Code)
	assert.Equal(t, 30000.0, stockyards[0].Inventory["COAL"])
	assert.Equal(t, 500.0, stockyards[0].Inventory["ORE"])
	assert.Equal(t, 1500.0, stockyards[1].Inventory["ORE"])
}
