package mealplan

import (
	"Pantry-Ledger/domain"
	"Pantry-Ledger/entities"
	"Pantry-Ledger/pkg/ingredient"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testOwner = uuid.New()
	testPlan  = uuid.New()
	testDay   = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
)

func unreservedItem(name string, quantity int) *entities.FoodItem {
	return &entities.FoodItem{
		ID:         uuid.New(),
		OwnerID:    testOwner,
		Name:       name,
		Quantity:   quantity,
		Category:   "Produce",
		ExpiryDate: testDay.AddDate(0, 0, 7),
		Status:     entities.StatusUnreserved,
	}
}

func reservedFrom(origin *entities.FoodItem, quantity int) *entities.Reservation {
	return &entities.Reservation{
		ID:              uuid.New(),
		OwnerID:         origin.OwnerID,
		OriginItemID:    origin.ID,
		Name:            origin.Name,
		Quantity:        quantity,
		Category:        origin.Category,
		StorageLocation: origin.StorageLocation,
		ExpiryDate:      origin.ExpiryDate,
	}
}

func totalQuantity(ledger *Ledger, cs *ChangeSet) int {
	total := 0
	for _, item := range ledger.Items {
		total += item.Quantity
	}
	for _, reservation := range ledger.Reservations {
		total += reservation.Quantity
	}
	for _, record := range cs.ConsumptionCreates {
		total += record.Quantity
	}
	return total
}

func TestApplyFromReservation(t *testing.T) {
	// Origin Apple qty=10 with 4 reserved leaves 6 unreserved. Consuming 3
	// from the reservation must leave 6 + 1 + 3 = 10 accounted for.
	apple := unreservedItem("Apple", 6)
	reservation := reservedFrom(apple, 4)
	ledger := &Ledger{
		Items:        []*entities.FoodItem{apple},
		Reservations: []*entities.Reservation{reservation},
	}

	cs, outcomes := Apply(ledger, ingredient.ParseList("Apple 3 [marked]"), testPlan, testOwner, testDay)

	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.OutcomeApplied, outcomes[0].Status)
	assert.Equal(t, 3, outcomes[0].Applied)

	assert.Equal(t, 6, apple.Quantity)
	assert.Equal(t, 1, reservation.Quantity)

	require.Len(t, cs.ConsumptionCreates, 1)
	record := cs.ConsumptionCreates[0]
	assert.Equal(t, 3, record.Quantity)
	assert.True(t, record.FromReserved)
	assert.Equal(t, apple.ID, record.OriginItemID)
	assert.Equal(t, testDay, record.ConsumedOn)

	assert.Equal(t, 10, totalQuantity(ledger, cs))
}

func TestRestoreUndoesApply(t *testing.T) {
	apple := unreservedItem("Apple", 6)
	reservation := reservedFrom(apple, 4)
	ledger := &Ledger{
		Items:        []*entities.FoodItem{apple},
		Reservations: []*entities.Reservation{reservation},
	}

	cs, _ := Apply(ledger, ingredient.ParseList("Apple 3 [marked]"), testPlan, testOwner, testDay)
	require.Equal(t, 1, reservation.Quantity)

	restore, outcomes := Restore(ledger, cs.ConsumptionCreates)

	assert.Equal(t, 4, reservation.Quantity)
	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.OutcomeRestored, outcomes[0].Status)
	assert.Len(t, restore.ConsumptionReversals, 1)
	assert.True(t, cs.ConsumptionCreates[0].Reversed)
}

func TestRestoreSkipsReversedRecords(t *testing.T) {
	apple := unreservedItem("Apple", 6)
	ledger := &Ledger{Items: []*entities.FoodItem{apple}}

	cs, _ := Apply(ledger, ingredient.ParseList("Apple 2 [non-marked]"), testPlan, testOwner, testDay)
	require.Len(t, cs.ConsumptionCreates, 1)

	Restore(ledger, cs.ConsumptionCreates)
	again, outcomes := Restore(ledger, cs.ConsumptionCreates)

	assert.Equal(t, 6, apple.Quantity)
	assert.Empty(t, outcomes)
	assert.True(t, again.Empty())
}

func TestApplyDeletesRowsAtZero(t *testing.T) {
	apple := unreservedItem("Apple", 2)
	reservation := reservedFrom(unreservedItem("Milk", 1), 3)
	reservation.Name = "Milk"
	ledger := &Ledger{
		Items:        []*entities.FoodItem{apple},
		Reservations: []*entities.Reservation{reservation},
	}

	cs, outcomes := Apply(ledger, ingredient.ParseList("Apple 2 [non-marked]\nMilk 3 [marked]"), testPlan, testOwner, testDay)

	require.Len(t, outcomes, 2)
	assert.Equal(t, domain.OutcomeApplied, outcomes[0].Status)
	assert.Equal(t, domain.OutcomeApplied, outcomes[1].Status)

	assert.Empty(t, ledger.Items)
	assert.Empty(t, ledger.Reservations)
	assert.Equal(t, []uuid.UUID{apple.ID}, cs.ItemDeletes)
	assert.Equal(t, []uuid.UUID{reservation.ID}, cs.ReservationDeletes)
}

func TestRestoreRebuildsDeletedRows(t *testing.T) {
	apple := unreservedItem("Apple", 2)
	appleID := apple.ID
	ledger := &Ledger{Items: []*entities.FoodItem{apple}}

	cs, _ := Apply(ledger, ingredient.ParseList("Apple 2 [non-marked]"), testPlan, testOwner, testDay)
	require.Empty(t, ledger.Items)

	restore, _ := Restore(ledger, cs.ConsumptionCreates)

	require.Len(t, restore.ItemCreates, 1)
	rebuilt := restore.ItemCreates[0]
	assert.Equal(t, appleID, rebuilt.ID)
	assert.Equal(t, 2, rebuilt.Quantity)
	assert.Equal(t, entities.StatusUnreserved, rebuilt.Status)
}

func TestApplyPartialOnShortStock(t *testing.T) {
	apple := unreservedItem("Apple", 2)
	ledger := &Ledger{Items: []*entities.FoodItem{apple}}

	cs, outcomes := Apply(ledger, ingredient.ParseList("Apple 5 [non-marked]"), testPlan, testOwner, testDay)

	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.OutcomePartial, outcomes[0].Status)
	assert.Equal(t, 5, outcomes[0].Requested)
	assert.Equal(t, 2, outcomes[0].Applied)
	assert.NotEmpty(t, outcomes[0].Reason)

	require.Len(t, cs.ConsumptionCreates, 1)
	assert.Equal(t, 2, cs.ConsumptionCreates[0].Quantity)
}

func TestApplySkipsUnresolvedAndMalformed(t *testing.T) {
	ledger := &Ledger{Items: []*entities.FoodItem{unreservedItem("Apple", 5)}}

	cs, outcomes := Apply(ledger, ingredient.ParseList("Dragonfruit 2 [non-marked]\nApple [non-marked]\nApple 1 [non-marked]"), testPlan, testOwner, testDay)

	require.Len(t, outcomes, 3)
	assert.Equal(t, domain.OutcomeSkipped, outcomes[0].Status)
	assert.Equal(t, domain.ErrUnresolvedIngredient.Error(), outcomes[0].Reason)
	assert.Equal(t, domain.OutcomeSkipped, outcomes[1].Status)
	assert.Equal(t, domain.OutcomeApplied, outcomes[2].Status)

	// Skipped lines must not touch the ledger.
	assert.Len(t, cs.ConsumptionCreates, 1)
	assert.Equal(t, 4, ledger.Items[0].Quantity)
}

func TestApplyReservedSpillsToOrigin(t *testing.T) {
	// The reservation claims 2 but the line wants 5; the shortfall comes out
	// of the unreserved origin row and the discrepancy is reported.
	apple := unreservedItem("Apple", 6)
	reservation := reservedFrom(apple, 2)
	ledger := &Ledger{
		Items:        []*entities.FoodItem{apple},
		Reservations: []*entities.Reservation{reservation},
	}

	cs, outcomes := Apply(ledger, ingredient.ParseList("Apple 5 [marked]"), testPlan, testOwner, testDay)

	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.OutcomeApplied, outcomes[0].Status)
	assert.Equal(t, 5, outcomes[0].Applied)
	assert.Equal(t, domain.ErrInconsistentState.Error(), outcomes[0].Reason)

	assert.Empty(t, ledger.Reservations)
	assert.Equal(t, 3, apple.Quantity)

	require.Len(t, cs.ConsumptionCreates, 2)
	assert.True(t, cs.ConsumptionCreates[0].FromReserved)
	assert.Equal(t, 2, cs.ConsumptionCreates[0].Quantity)
	assert.False(t, cs.ConsumptionCreates[1].FromReserved)
	assert.Equal(t, 3, cs.ConsumptionCreates[1].Quantity)
}

func TestApplyDefaultsSourceToReserved(t *testing.T) {
	apple := unreservedItem("Apple", 6)
	reservation := reservedFrom(apple, 4)
	ledger := &Ledger{
		Items:        []*entities.FoodItem{apple},
		Reservations: []*entities.Reservation{reservation},
	}

	_, outcomes := Apply(ledger, ingredient.ParseList("Apple 3"), testPlan, testOwner, testDay)

	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.OutcomeApplied, outcomes[0].Status)
	assert.Equal(t, 1, reservation.Quantity)
	assert.Equal(t, 6, apple.Quantity)
}

func TestApplyConservesTotalQuantity(t *testing.T) {
	apple := unreservedItem("Apple", 7)
	milk := unreservedItem("Milk", 4)
	reservation := reservedFrom(apple, 3)
	ledger := &Ledger{
		Items:        []*entities.FoodItem{apple, milk},
		Reservations: []*entities.Reservation{reservation},
	}
	before := 7 + 4 + 3

	cs, _ := Apply(ledger, ingredient.ParseList("Apple 2 [marked]\nMilk 4 [non-marked]\nApple 1 [non-marked]"), testPlan, testOwner, testDay)

	assert.Equal(t, before, totalQuantity(ledger, cs))
}

func TestRestoreMergesIntoExistingReservation(t *testing.T) {
	apple := unreservedItem("Apple", 6)
	reservation := reservedFrom(apple, 4)
	ledger := &Ledger{
		Items:        []*entities.FoodItem{apple},
		Reservations: []*entities.Reservation{reservation},
	}

	cs, _ := Apply(ledger, ingredient.ParseList("Apple 4 [marked]"), testPlan, testOwner, testDay)
	require.Empty(t, ledger.Reservations)

	// A sibling reservation for the same origin appears before the restore
	// runs; the restored quantity merges into it instead of duplicating.
	sibling := reservedFrom(apple, 2)
	ledger.Reservations = append(ledger.Reservations, sibling)

	restore, _ := Restore(ledger, cs.ConsumptionCreates)

	assert.Empty(t, restore.ReservationCreates)
	assert.Equal(t, 6, sibling.Quantity)
}
