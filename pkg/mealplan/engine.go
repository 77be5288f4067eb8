package mealplan

import (
	"Pantry-Ledger/domain"
	"Pantry-Ledger/entities"
	"Pantry-Ledger/pkg/ingredient"
	"time"

	"github.com/google/uuid"
)

// Ledger is an in-memory snapshot of one owner's mutable partitions:
// unreserved food items and meal reservations. The engine mutates the
// snapshot and records every change in a ChangeSet; nothing touches storage
// until the whole batch is persisted in one transaction.
type Ledger struct {
	Items        []*entities.FoodItem
	Reservations []*entities.Reservation
}

// ChangeSet is the persistence plan produced by Apply and Restore. Entries
// are ordered creates, updates, deletes, consumption appends, reversals.
type ChangeSet struct {
	ItemCreates        []*entities.FoodItem
	ItemUpdates        []*entities.FoodItem
	ItemDeletes        []uuid.UUID
	ReservationCreates []*entities.Reservation
	ReservationUpdates []*entities.Reservation
	ReservationDeletes []uuid.UUID

	ConsumptionCreates   []*entities.ConsumptionRecord
	ConsumptionReversals []uuid.UUID

	SettlementCreates     []*entities.MealSettlement
	SettlementDeletePlans []uuid.UUID

	// PlanUpdates rides along so an edited plan row commits with the
	// consumption it describes.
	PlanUpdates []*entities.MealPlan
}

// Empty reports whether the change set would persist nothing.
func (cs *ChangeSet) Empty() bool {
	return len(cs.ItemCreates) == 0 && len(cs.ItemUpdates) == 0 && len(cs.ItemDeletes) == 0 &&
		len(cs.ReservationCreates) == 0 && len(cs.ReservationUpdates) == 0 && len(cs.ReservationDeletes) == 0 &&
		len(cs.ConsumptionCreates) == 0 && len(cs.ConsumptionReversals) == 0 &&
		len(cs.SettlementCreates) == 0 && len(cs.SettlementDeletePlans) == 0 &&
		len(cs.PlanUpdates) == 0
}

func (cs *ChangeSet) updateItem(item *entities.FoodItem) {
	for _, existing := range cs.ItemUpdates {
		if existing.ID == item.ID {
			return
		}
	}
	cs.ItemUpdates = append(cs.ItemUpdates, item)
}

func (cs *ChangeSet) updateReservation(reservation *entities.Reservation) {
	for _, existing := range cs.ReservationUpdates {
		if existing.ID == reservation.ID {
			return
		}
	}
	cs.ReservationUpdates = append(cs.ReservationUpdates, reservation)
}

// Apply consumes the parsed ingredient lines from the ledger, reserved
// partition first, spilling any shortfall to the unreserved origin row. Each
// amount actually removed becomes a consumption record tagged with the
// partition it came from. Unresolvable or malformed lines are skipped and
// reported; they never abort the batch.
func Apply(ledger *Ledger, lines []ingredient.Parsed, mealPlanID uuid.UUID, ownerID uuid.UUID, consumedOn time.Time) (*ChangeSet, []domain.IngredientOutcome) {
	cs := &ChangeSet{}
	outcomes := make([]domain.IngredientOutcome, 0, len(lines))

	for _, parsed := range lines {
		outcome := domain.IngredientOutcome{
			Line:      parsed.Index + 1,
			Name:      parsed.Line.Name,
			Requested: parsed.Line.Quantity,
		}

		if parsed.Err != nil {
			outcome.Name = parsed.Raw
			outcome.Status = domain.OutcomeSkipped
			outcome.Reason = parsed.Err.Error()
			outcomes = append(outcomes, outcome)
			continue
		}

		applied := 0
		if parsed.Line.Source == ingredient.SourceReserved {
			applied = applyReserved(ledger, cs, parsed.Line, mealPlanID, ownerID, consumedOn, &outcome)
		} else {
			applied = applyUnreserved(ledger, cs, parsed.Line, parsed.Line.Quantity, mealPlanID, ownerID, consumedOn, &outcome)
		}

		outcome.Applied = applied
		switch {
		case outcome.Status == domain.OutcomeSkipped:
		case applied == parsed.Line.Quantity:
			outcome.Status = domain.OutcomeApplied
		default:
			outcome.Status = domain.OutcomePartial
			if outcome.Reason == "" {
				outcome.Reason = domain.ErrInsufficientStock.Error()
			}
		}
		outcomes = append(outcomes, outcome)
	}

	return cs, outcomes
}

func applyReserved(ledger *Ledger, cs *ChangeSet, line ingredient.Line, mealPlanID uuid.UUID, ownerID uuid.UUID, consumedOn time.Time, outcome *domain.IngredientOutcome) int {
	names := make([]string, len(ledger.Reservations))
	for i, reservation := range ledger.Reservations {
		names[i] = reservation.Name
	}

	idx := ingredient.Resolve(line.Name, names)
	if idx == -1 {
		outcome.Status = domain.OutcomeSkipped
		outcome.Reason = domain.ErrUnresolvedIngredient.Error()
		return 0
	}

	reservation := ledger.Reservations[idx]
	take := line.Quantity
	if take > reservation.Quantity {
		take = reservation.Quantity
	}

	reservation.Quantity -= take
	cs.ConsumptionCreates = append(cs.ConsumptionCreates, &entities.ConsumptionRecord{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		OriginItemID:    reservation.OriginItemID,
		MealPlanID:      &mealPlanID,
		Name:            reservation.Name,
		Quantity:        take,
		Category:        reservation.Category,
		StorageLocation: reservation.StorageLocation,
		ExpiryDate:      reservation.ExpiryDate,
		FromReserved:    true,
		ConsumedOn:      consumedOn,
	})

	if reservation.Quantity == 0 {
		cs.ReservationDeletes = append(cs.ReservationDeletes, reservation.ID)
		ledger.Reservations = append(ledger.Reservations[:idx], ledger.Reservations[idx+1:]...)
	} else {
		cs.updateReservation(reservation)
	}

	remainder := line.Quantity - take
	if remainder == 0 {
		return take
	}

	// The reservation implied more than it held. Take the rest directly from
	// the unreserved origin row; the caller logs the discrepancy.
	outcome.Reason = domain.ErrInconsistentState.Error()
	spillLine := line
	if origin := ledger.itemByID(reservation.OriginItemID); origin != nil {
		spillLine.Name = origin.Name
	}
	return take + applyUnreserved(ledger, cs, spillLine, remainder, mealPlanID, ownerID, consumedOn, outcome)
}

func applyUnreserved(ledger *Ledger, cs *ChangeSet, line ingredient.Line, quantity int, mealPlanID uuid.UUID, ownerID uuid.UUID, consumedOn time.Time, outcome *domain.IngredientOutcome) int {
	names := make([]string, len(ledger.Items))
	for i, item := range ledger.Items {
		names[i] = item.Name
	}

	idx := ingredient.Resolve(line.Name, names)
	if idx == -1 {
		if outcome.Applied == 0 && outcome.Reason == "" {
			outcome.Status = domain.OutcomeSkipped
			outcome.Reason = domain.ErrUnresolvedIngredient.Error()
		}
		return 0
	}

	item := ledger.Items[idx]
	take := quantity
	if take > item.Quantity {
		take = item.Quantity
	}

	item.Quantity -= take
	cs.ConsumptionCreates = append(cs.ConsumptionCreates, &entities.ConsumptionRecord{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		OriginItemID:    item.ID,
		MealPlanID:      &mealPlanID,
		Name:            item.Name,
		Quantity:        take,
		Category:        item.Category,
		StorageLocation: item.StorageLocation,
		ExpiryDate:      item.ExpiryDate,
		FromReserved:    false,
		ConsumedOn:      consumedOn,
	})

	if item.Quantity == 0 {
		cs.ItemDeletes = append(cs.ItemDeletes, item.ID)
		ledger.Items = append(ledger.Items[:idx], ledger.Items[idx+1:]...)
	} else {
		cs.updateItem(item)
	}

	return take
}

// Restore is the algebraic inverse of Apply. It walks the plan's unreversed
// consumption records and puts each quantity back into the partition it came
// from, rebuilding deleted rows from the record's denormalized fields.
// Records are flagged reversed, never deleted.
func Restore(ledger *Ledger, records []*entities.ConsumptionRecord) (*ChangeSet, []domain.IngredientOutcome) {
	cs := &ChangeSet{}
	var outcomes []domain.IngredientOutcome

	for _, record := range records {
		if record.Reversed {
			continue
		}

		if record.FromReserved {
			restoreReservation(ledger, cs, record)
		} else {
			restoreItem(ledger, cs, record)
		}

		cs.ConsumptionReversals = append(cs.ConsumptionReversals, record.ID)
		record.Reversed = true

		outcomes = append(outcomes, domain.IngredientOutcome{
			Name:      record.Name,
			Requested: record.Quantity,
			Applied:   record.Quantity,
			Status:    domain.OutcomeRestored,
		})
	}

	return cs, outcomes
}

func restoreReservation(ledger *Ledger, cs *ChangeSet, record *entities.ConsumptionRecord) {
	for _, reservation := range ledger.Reservations {
		if reservation.OwnerID == record.OwnerID && reservation.OriginItemID == record.OriginItemID {
			reservation.Quantity += record.Quantity
			if !containsReservation(cs.ReservationCreates, reservation.ID) {
				cs.updateReservation(reservation)
			}
			return
		}
	}

	reservation := &entities.Reservation{
		ID:              uuid.New(),
		OwnerID:         record.OwnerID,
		OriginItemID:    record.OriginItemID,
		Name:            record.Name,
		Quantity:        record.Quantity,
		Category:        record.Category,
		StorageLocation: record.StorageLocation,
		ExpiryDate:      record.ExpiryDate,
	}
	ledger.Reservations = append(ledger.Reservations, reservation)
	cs.ReservationCreates = append(cs.ReservationCreates, reservation)
}

func restoreItem(ledger *Ledger, cs *ChangeSet, record *entities.ConsumptionRecord) {
	if item := ledger.itemByID(record.OriginItemID); item != nil {
		item.Quantity += record.Quantity
		if !containsItem(cs.ItemCreates, item.ID) {
			cs.updateItem(item)
		}
		return
	}

	item := &entities.FoodItem{
		ID:              record.OriginItemID,
		OwnerID:         record.OwnerID,
		Name:            record.Name,
		Quantity:        record.Quantity,
		ExpiryDate:      record.ExpiryDate,
		Category:        record.Category,
		StorageLocation: record.StorageLocation,
		Status:          entities.StatusUnreserved,
	}
	ledger.Items = append(ledger.Items, item)
	cs.ItemCreates = append(cs.ItemCreates, item)
}

func (l *Ledger) itemByID(id uuid.UUID) *entities.FoodItem {
	for _, item := range l.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func containsItem(items []*entities.FoodItem, id uuid.UUID) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}

func containsReservation(reservations []*entities.Reservation, id uuid.UUID) bool {
	for _, reservation := range reservations {
		if reservation.ID == id {
			return true
		}
	}
	return false
}
