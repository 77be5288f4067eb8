package expiry

import (
	"Pantry-Ledger/entities"
	"Pantry-Ledger/internal/utils/calendar"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpiryRepository struct {
	items map[uuid.UUID]*entities.FoodItem
}

func newFakeExpiryRepository() *fakeExpiryRepository {
	return &fakeExpiryRepository{items: make(map[uuid.UUID]*entities.FoodItem)}
}

func (r *fakeExpiryRepository) GetExpiredCandidates(_ context.Context, ownerID string, before time.Time) ([]*entities.FoodItem, error) {
	var candidates []*entities.FoodItem
	for _, item := range r.items {
		if item.OwnerID.String() != ownerID {
			continue
		}
		if item.Status != entities.StatusUnreserved && item.Status != entities.StatusDonated {
			continue
		}
		if item.ExpiryDate.Before(before) {
			candidates = append(candidates, item)
		}
	}
	return candidates, nil
}

func (r *fakeExpiryRepository) MarkExpired(_ context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			item.Status = entities.StatusExpired
		}
	}
	return nil
}

func seedItem(repo *fakeExpiryRepository, owner uuid.UUID, status string, quantity int, expiry time.Time) *entities.FoodItem {
	item := &entities.FoodItem{
		ID:         uuid.New(),
		OwnerID:    owner,
		Name:       "Milk",
		Quantity:   quantity,
		ExpiryDate: expiry,
		Status:     status,
	}
	repo.items[item.ID] = item
	return item
}

func TestSweepExpiresStaleRows(t *testing.T) {
	repo := newFakeExpiryRepository()
	owner := uuid.New()
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, calendar.BusinessZone)
	service := NewExpiryService(repo, calendar.FixedClock{Time: now}, "")

	stale := seedItem(repo, owner, entities.StatusUnreserved, 5, now.AddDate(0, 0, -3))
	fresh := seedItem(repo, owner, entities.StatusUnreserved, 2, now.AddDate(0, 0, 2))

	count, err := service.SweepOwner(context.Background(), owner.String())

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, entities.StatusExpired, stale.Status)
	assert.Equal(t, 5, stale.Quantity)
	assert.Equal(t, entities.StatusUnreserved, fresh.Status)
}

func TestSweepIsIdempotent(t *testing.T) {
	repo := newFakeExpiryRepository()
	owner := uuid.New()
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, calendar.BusinessZone)
	service := NewExpiryService(repo, calendar.FixedClock{Time: now}, "")

	seedItem(repo, owner, entities.StatusUnreserved, 5, now.AddDate(0, 0, -3))

	first, err := service.SweepOwner(context.Background(), owner.String())
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := service.SweepOwner(context.Background(), owner.String())
	require.NoError(t, err)
	assert.Zero(t, second)
}

func TestSweepBoundaryIsBusinessMidnight(t *testing.T) {
	repo := newFakeExpiryRepository()
	owner := uuid.New()
	now := time.Date(2024, 5, 10, 0, 30, 0, 0, calendar.BusinessZone)
	service := NewExpiryService(repo, calendar.FixedClock{Time: now}, "")

	// Expired one second before today's boundary counts; expiring today does
	// not.
	yesterday := seedItem(repo, owner, entities.StatusUnreserved, 1,
		time.Date(2024, 5, 9, 23, 59, 59, 0, calendar.BusinessZone))
	today := seedItem(repo, owner, entities.StatusUnreserved, 1,
		time.Date(2024, 5, 10, 0, 0, 0, 0, calendar.BusinessZone))

	count, err := service.SweepOwner(context.Background(), owner.String())

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, entities.StatusExpired, yesterday.Status)
	assert.Equal(t, entities.StatusUnreserved, today.Status)
}

func TestSweepCoversDonatedRows(t *testing.T) {
	repo := newFakeExpiryRepository()
	owner := uuid.New()
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, calendar.BusinessZone)
	service := NewExpiryService(repo, calendar.FixedClock{Time: now}, "")

	donated := seedItem(repo, owner, entities.StatusDonated, 3, now.AddDate(0, 0, -1))

	count, err := service.SweepOwner(context.Background(), owner.String())

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, entities.StatusExpired, donated.Status)
}
