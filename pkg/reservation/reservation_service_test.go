package reservation

import (
	"Pantry-Ledger/domain"
	"Pantry-Ledger/entities"
	"Pantry-Ledger/internal/utils/keylock"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeFoodRepository struct {
	items   map[uuid.UUID]*entities.FoodItem
	records []*entities.ConsumptionRecord
}

func newFakeFoodRepository() *fakeFoodRepository {
	return &fakeFoodRepository{items: make(map[uuid.UUID]*entities.FoodItem)}
}

func (r *fakeFoodRepository) AddFoodItem(_ context.Context, item *entities.FoodItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeFoodRepository) GetFoodItemByID(_ context.Context, id string) (*entities.FoodItem, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	item, ok := r.items[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *fakeFoodRepository) UpdateFoodItem(_ context.Context, item *entities.FoodItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeFoodRepository) DeleteFoodItem(_ context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	delete(r.items, parsed)
	return nil
}

func (r *fakeFoodRepository) GetFoodItems(_ context.Context, ownerID string, status string, _, _ int) ([]*entities.FoodItem, int64, error) {
	var items []*entities.FoodItem
	for _, item := range r.items {
		if item.OwnerID.String() == ownerID && (status == "all" || status == "" || item.Status == status) {
			items = append(items, item)
		}
	}
	return items, int64(len(items)), nil
}

func (r *fakeFoodRepository) GetFoodItemsByStatus(_ context.Context, ownerID string, statuses []string) ([]*entities.FoodItem, error) {
	var items []*entities.FoodItem
	for _, item := range r.items {
		if item.OwnerID.String() != ownerID {
			continue
		}
		for _, status := range statuses {
			if item.Status == status {
				items = append(items, item)
				break
			}
		}
	}
	return items, nil
}

func (r *fakeFoodRepository) RecordConsumption(_ context.Context, item *entities.FoodItem, record *entities.ConsumptionRecord) error {
	r.records = append(r.records, record)
	if item.Quantity == 0 {
		delete(r.items, item.ID)
		return nil
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeFoodRepository) GetConsumptionRecordsByMealPlan(_ context.Context, mealPlanID string) ([]*entities.ConsumptionRecord, error) {
	var records []*entities.ConsumptionRecord
	for _, record := range r.records {
		if record.MealPlanID != nil && record.MealPlanID.String() == mealPlanID {
			records = append(records, record)
		}
	}
	return records, nil
}

type fakeReservationRepository struct {
	reservations map[uuid.UUID]*entities.Reservation
}

func newFakeReservationRepository() *fakeReservationRepository {
	return &fakeReservationRepository{reservations: make(map[uuid.UUID]*entities.Reservation)}
}

func (r *fakeReservationRepository) CreateReservation(_ context.Context, reservation *entities.Reservation) error {
	r.reservations[reservation.ID] = reservation
	return nil
}

func (r *fakeReservationRepository) GetReservationByID(_ context.Context, id string) (*entities.Reservation, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	reservation, ok := r.reservations[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return reservation, nil
}

func (r *fakeReservationRepository) GetReservationByOrigin(_ context.Context, ownerID string, originItemID string) (*entities.Reservation, error) {
	for _, reservation := range r.reservations {
		if reservation.OwnerID.String() == ownerID && reservation.OriginItemID.String() == originItemID {
			return reservation, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeReservationRepository) UpdateReservation(_ context.Context, reservation *entities.Reservation) error {
	r.reservations[reservation.ID] = reservation
	return nil
}

func (r *fakeReservationRepository) DeleteReservation(_ context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	delete(r.reservations, parsed)
	return nil
}

func (r *fakeReservationRepository) GetReservations(_ context.Context, ownerID string) ([]*entities.Reservation, error) {
	var reservations []*entities.Reservation
	for _, reservation := range r.reservations {
		if reservation.OwnerID.String() == ownerID {
			reservations = append(reservations, reservation)
		}
	}
	return reservations, nil
}

type fixture struct {
	service  ReservationService
	foodRepo *fakeFoodRepository
	resRepo  *fakeReservationRepository
	owner    uuid.UUID
}

func newFixture() *fixture {
	foodRepo := newFakeFoodRepository()
	resRepo := newFakeReservationRepository()
	return &fixture{
		service:  NewReservationService(resRepo, foodRepo, keylock.New()),
		foodRepo: foodRepo,
		resRepo:  resRepo,
		owner:    uuid.New(),
	}
}

func (f *fixture) seedItem(name string, quantity int) *entities.FoodItem {
	item := &entities.FoodItem{
		ID:         uuid.New(),
		OwnerID:    f.owner,
		Name:       name,
		Quantity:   quantity,
		ExpiryDate: time.Now().AddDate(0, 0, 7),
		Status:     entities.StatusUnreserved,
	}
	f.foodRepo.items[item.ID] = item
	return item
}

func (f *fixture) totalQuantity() int {
	total := 0
	for _, item := range f.foodRepo.items {
		total += item.Quantity
	}
	for _, reservation := range f.resRepo.reservations {
		total += reservation.Quantity
	}
	return total
}

func TestReserveMovesQuantity(t *testing.T) {
	f := newFixture()
	origin := f.seedItem("Apple", 10)

	res, err := f.service.Reserve(context.Background(), domain.CreateReservationRequest{
		OriginItemID: origin.ID.String(),
		Quantity:     4,
	}, f.owner.String())

	require.NoError(t, err)
	assert.Equal(t, 4, res.Quantity)
	assert.Equal(t, origin.ID.String(), res.OriginItemID)
	assert.Equal(t, 6, origin.Quantity)
	assert.Equal(t, 10, f.totalQuantity())
}

func TestReserveFullQuantityDeletesOrigin(t *testing.T) {
	f := newFixture()
	origin := f.seedItem("Apple", 4)

	_, err := f.service.Reserve(context.Background(), domain.CreateReservationRequest{
		OriginItemID: origin.ID.String(),
		Quantity:     4,
	}, f.owner.String())

	require.NoError(t, err)
	assert.NotContains(t, f.foodRepo.items, origin.ID)
	assert.Equal(t, 4, f.totalQuantity())
}

func TestReserveMergesSameOrigin(t *testing.T) {
	f := newFixture()
	origin := f.seedItem("Apple", 10)

	_, err := f.service.Reserve(context.Background(), domain.CreateReservationRequest{
		OriginItemID: origin.ID.String(),
		Quantity:     3,
	}, f.owner.String())
	require.NoError(t, err)

	_, err = f.service.Reserve(context.Background(), domain.CreateReservationRequest{
		OriginItemID: origin.ID.String(),
		Quantity:     2,
	}, f.owner.String())
	require.NoError(t, err)

	assert.Len(t, f.resRepo.reservations, 1)
	for _, reservation := range f.resRepo.reservations {
		assert.Equal(t, 5, reservation.Quantity)
	}
	assert.Equal(t, 5, origin.Quantity)
}

func TestReserveInsufficientStock(t *testing.T) {
	f := newFixture()
	origin := f.seedItem("Apple", 3)

	_, err := f.service.Reserve(context.Background(), domain.CreateReservationRequest{
		OriginItemID: origin.ID.String(),
		Quantity:     5,
	}, f.owner.String())

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, origin.Quantity)
}

func TestReserveRejectsTerminalRows(t *testing.T) {
	f := newFixture()
	origin := f.seedItem("Apple", 3)
	origin.Status = entities.StatusDonated

	_, err := f.service.Reserve(context.Background(), domain.CreateReservationRequest{
		OriginItemID: origin.ID.String(),
		Quantity:     1,
	}, f.owner.String())

	assert.ErrorIs(t, err, domain.ErrItemImmutable)
}

func TestReserveRejectsForeignOwner(t *testing.T) {
	f := newFixture()
	origin := f.seedItem("Apple", 3)

	_, err := f.service.Reserve(context.Background(), domain.CreateReservationRequest{
		OriginItemID: origin.ID.String(),
		Quantity:     1,
	}, uuid.New().String())

	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
}

func TestPatchIncreaseTakesFromOrigin(t *testing.T) {
	f := newFixture()
	origin := f.seedItem("Apple", 10)

	res, err := f.service.Reserve(context.Background(), domain.CreateReservationRequest{
		OriginItemID: origin.ID.String(),
		Quantity:     4,
	}, f.owner.String())
	require.NoError(t, err)

	err = f.service.Patch(context.Background(), res.ID, domain.PatchReservationRequest{Quantity: 7}, f.owner.String())
	require.NoError(t, err)

	assert.Equal(t, 3, origin.Quantity)
	assert.Equal(t, 10, f.totalQuantity())
}

func TestPatchDecreaseReleasesToOrigin(t *testing.T) {
	f := newFixture()
	origin := f.seedItem("Apple", 10)

	res, err := f.service.Reserve(context.Background(), domain.CreateReservationRequest{
		OriginItemID: origin.ID.String(),
		Quantity:     4,
	}, f.owner.String())
	require.NoError(t, err)

	err = f.service.Patch(context.Background(), res.ID, domain.PatchReservationRequest{Quantity: 1}, f.owner.String())
	require.NoError(t, err)

	assert.Equal(t, 9, origin.Quantity)
	assert.Equal(t, 10, f.totalQuantity())
}

func TestPatchToZeroDeletesReservation(t *testing.T) {
	f := newFixture()
	origin := f.seedItem("Apple", 10)

	res, err := f.service.Reserve(context.Background(), domain.CreateReservationRequest{
		OriginItemID: origin.ID.String(),
		Quantity:     4,
	}, f.owner.String())
	require.NoError(t, err)

	err = f.service.Patch(context.Background(), res.ID, domain.PatchReservationRequest{Quantity: 0}, f.owner.String())
	require.NoError(t, err)

	assert.Empty(t, f.resRepo.reservations)
	assert.Equal(t, 10, origin.Quantity)
}

func TestDeleteRecreatesDeletedOrigin(t *testing.T) {
	f := newFixture()
	origin := f.seedItem("Apple", 4)
	originID := origin.ID

	res, err := f.service.Reserve(context.Background(), domain.CreateReservationRequest{
		OriginItemID: origin.ID.String(),
		Quantity:     4,
	}, f.owner.String())
	require.NoError(t, err)
	require.NotContains(t, f.foodRepo.items, originID)

	err = f.service.Delete(context.Background(), res.ID, f.owner.String())
	require.NoError(t, err)

	// The origin row comes back with its original id and full quantity.
	rebuilt, ok := f.foodRepo.items[originID]
	require.True(t, ok)
	assert.Equal(t, 4, rebuilt.Quantity)
	assert.Equal(t, entities.StatusUnreserved, rebuilt.Status)
	assert.Empty(t, f.resRepo.reservations)
}

func TestGetReservationsSumsSameOrigin(t *testing.T) {
	f := newFixture()
	origin := f.seedItem("Apple", 10)

	// Two rows for one origin can only exist transiently; listing must sum
	// them instead of showing duplicates.
	first := &entities.Reservation{
		ID:           uuid.New(),
		OwnerID:      f.owner,
		OriginItemID: origin.ID,
		Name:         "Apple",
		Quantity:     2,
	}
	second := &entities.Reservation{
		ID:           uuid.New(),
		OwnerID:      f.owner,
		OriginItemID: origin.ID,
		Name:         "Apple",
		Quantity:     3,
	}
	f.resRepo.reservations[first.ID] = first
	f.resRepo.reservations[second.ID] = second

	response, err := f.service.GetReservations(context.Background(), f.owner.String())

	require.NoError(t, err)
	require.Len(t, response, 1)
	assert.Equal(t, 5, response[0].Quantity)
}
