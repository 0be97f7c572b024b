package services

import (
	"testing"

	"coffeezone_backend/internal/repositories"
	"coffeezone_backend/internal/services/dto"
	"coffeezone_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService() CatalogService {
	return NewCatalogService(repositories.NewVariationRepository(), repositories.NewBundleRepository())
}

func TestCatalogService_CreateMachine(t *testing.T) {
	db := newTestDB(t)
	service := newCatalogService()

	machine, err := service.CreateMachine(db, dto.CatalogItemRequest{
		Name:       "Jetinno JL500",
		ShortTitle: "JL500",
		Specs:      "Две группы\nТач-экран",
		Price:      950000,
	})
	require.NoError(t, err)

	assert.NotZero(t, machine.ID)
	// Код сгенерирован автоматически
	assert.NotEmpty(t, machine.Code)
	assert.True(t, machine.Active)
	assert.Equal(t, "JL500", machine.ShortTitle)
}

func TestCatalogService_CreateMachine_Inactive(t *testing.T) {
	db := newTestDB(t)
	service := newCatalogService()

	inactive := false
	machine, err := service.CreateMachine(db, dto.CatalogItemRequest{
		Name:   "Снятая с продажи",
		Price:  100000,
		Active: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, machine.Active)

	// Явный false не должен подменяться на true при вставке
	stored, err := service.GetMachine(db, machine.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestCatalogService_CreateMachine_DuplicateCode(t *testing.T) {
	db := newTestDB(t)
	service := newCatalogService()

	_, err := service.CreateMachine(db, dto.CatalogItemRequest{Code: "jl-500", Name: "Первая"})
	require.NoError(t, err)

	_, err = service.CreateMachine(db, dto.CatalogItemRequest{Code: "jl-500", Name: "Вторая"})
	requireAppErrorCode(t, err, apperrors.CodeAlreadyExists)
}

func TestCatalogService_UpdateMachine(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	service := newCatalogService()

	inactive := false
	updated, err := service.UpdateMachine(db, f.machine.ID, dto.CatalogItemRequest{
		Name:   "Jetinno JL300 v2",
		Price:  900000,
		Active: &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "Jetinno JL300 v2", updated.Name)
	assert.Equal(t, 900000, updated.Price)
	assert.False(t, updated.Active)
	// Пустой code в запросе не затирает прежний
	assert.Equal(t, f.machine.Code, updated.Code)
}

func TestCatalogService_UpdateMachine_NotFound(t *testing.T) {
	db := newTestDB(t)
	service := newCatalogService()

	_, err := service.UpdateMachine(db, 999, dto.CatalogItemRequest{Name: "Нет такой"})
	requireAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestCatalogService_DeleteCarcass_ReferencedByVariation(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	seedVariation(t, db, f)
	service := newCatalogService()

	err := service.DeleteCarcass(db, f.carcass.ID)
	requireAppErrorCode(t, err, apperrors.CodeConflict)
}

func TestCatalogService_DeleteCarcassColor_ReferencedByVariation(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	seedVariation(t, db, f)
	service := newCatalogService()

	err := service.DeleteCarcassColor(db, f.carcassColor.ID)
	requireAppErrorCode(t, err, apperrors.CodeConflict)
}

func TestCatalogService_DeleteFridge_Free(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	service := newCatalogService()

	require.NoError(t, service.DeleteFridge(db, f.fridge.ID))

	_, err := service.GetFridge(db, f.fridge.ID)
	requireAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestCatalogService_DeleteTerminal_ReferencedByBundle(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	variation := seedVariation(t, db, f)
	service := newCatalogService()
	bundles := newBundleService()

	_, err := bundles.Create(db, dto.BundleRequest{
		Name:                       "Комплект с терминалом",
		CarcassDesignCombinationID: variation.ID,
		CoffeeMachineID:            f.machine.ID,
		TerminalID:                 &f.terminal.ID,
	})
	require.NoError(t, err)

	err = service.DeleteTerminal(db, f.terminal.ID)
	requireAppErrorCode(t, err, apperrors.CodeConflict)
}

func TestCatalogService_ColorCRUD(t *testing.T) {
	db := newTestDB(t)
	service := newCatalogService()

	color, err := service.CreateDesignColor(db, dto.ColorRequest{
		Name:       "Венге",
		PriceDelta: 20000,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, color.Code)

	updated, err := service.UpdateDesignColor(db, color.ID, dto.ColorRequest{
		Name:       "Венге темный",
		PriceDelta: 25000,
	})
	require.NoError(t, err)
	assert.Equal(t, 25000, updated.PriceDelta)

	require.NoError(t, service.DeleteDesignColor(db, color.ID))
}
