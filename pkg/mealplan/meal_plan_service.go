package mealplan

import (
	"Pantry-Ledger/domain"
	"Pantry-Ledger/entities"
	"Pantry-Ledger/internal/utils/calendar"
	"Pantry-Ledger/internal/utils/keylock"
	"Pantry-Ledger/pkg/food"
	"Pantry-Ledger/pkg/ingredient"
	"Pantry-Ledger/pkg/reservation"
	"context"
	"time"

	"github.com/google/uuid"
)

type (
	// MealPlanService drives the consumption engine. Creating a plan consumes
	// its ingredients immediately and writes a settlement marker for the plan's
	// date; updating restores the original consumption before applying the new
	// list; deleting restores everything. Settle re-runs consumption for a
	// past-dated plan, guarded by the marker so it never double-counts.
	MealPlanService interface {
		CreateMealPlan(ctx context.Context, req domain.CreateMealPlanRequest, ownerID string) (domain.MealPlanResponse, error)
		UpdateMealPlan(ctx context.Context, id string, req domain.UpdateMealPlanRequest, ownerID string) (domain.MealPlanResponse, error)
		DeleteMealPlan(ctx context.Context, id string, ownerID string) error
		GetMealPlans(ctx context.Context, ownerID string, page, limit int) ([]domain.MealPlanResponse, int64, error)
		GetMealPlanByID(ctx context.Context, id string, ownerID string) (domain.MealPlanResponse, error)
		SettleMealPlan(ctx context.Context, id string, ownerID string) (domain.SettleMealPlanResponse, error)
	}

	mealPlanService struct {
		mealPlanRepository    MealPlanRepository
		foodRepository        food.FoodRepository
		reservationRepository reservation.ReservationRepository
		locks                 *keylock.KeyLock
		clock                 calendar.Clock
	}
)

func NewMealPlanService(mealPlanRepository MealPlanRepository, foodRepository food.FoodRepository, reservationRepository reservation.ReservationRepository, locks *keylock.KeyLock, clock calendar.Clock) MealPlanService {
	return &mealPlanService{
		mealPlanRepository:    mealPlanRepository,
		foodRepository:        foodRepository,
		reservationRepository: reservationRepository,
		locks:                 locks,
		clock:                 clock,
	}
}

func (s *mealPlanService) CreateMealPlan(ctx context.Context, req domain.CreateMealPlanRequest, ownerID string) (domain.MealPlanResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return domain.MealPlanResponse{}, domain.ErrInvalidMealPlanDate
	}

	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return domain.MealPlanResponse{}, domain.ErrParseUUID
	}

	s.locks.Lock(ownerID)
	defer s.locks.Unlock(ownerID)

	mealPlan := &entities.MealPlan{
		ID:          uuid.New(),
		OwnerID:     ownerUUID,
		Name:        req.Name,
		Ingredients: req.Ingredients,
		Date:        date,
		MealSlot:    req.MealSlot,
	}
	if err := s.mealPlanRepository.CreateMealPlan(ctx, mealPlan); err != nil {
		return domain.MealPlanResponse{}, err
	}

	ledger, err := s.loadLedger(ctx, ownerID)
	if err != nil {
		return domain.MealPlanResponse{}, err
	}

	cs, outcomes := Apply(ledger, ingredient.ParseList(mealPlan.Ingredients), mealPlan.ID, ownerUUID, s.consumedOn(mealPlan))
	cs.SettlementCreates = append(cs.SettlementCreates, newSettlement(mealPlan))

	if err := s.mealPlanRepository.ApplyChangeSets(ctx, cs); err != nil {
		return domain.MealPlanResponse{}, err
	}

	return toMealPlanResponse(mealPlan, outcomes), nil
}

func (s *mealPlanService) UpdateMealPlan(ctx context.Context, id string, req domain.UpdateMealPlanRequest, ownerID string) (domain.MealPlanResponse, error) {
	s.locks.Lock(ownerID)
	defer s.locks.Unlock(ownerID)

	mealPlan, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return domain.MealPlanResponse{}, err
	}

	records, err := s.foodRepository.GetConsumptionRecordsByMealPlan(ctx, id)
	if err != nil {
		return domain.MealPlanResponse{}, err
	}

	ledger, err := s.loadLedger(ctx, ownerID)
	if err != nil {
		return domain.MealPlanResponse{}, err
	}

	// Undo the plan's current consumption, then re-apply the edited list
	// against the restored ledger. Both halves land in one transaction.
	csRestore, _ := Restore(ledger, records)
	csRestore.SettlementDeletePlans = append(csRestore.SettlementDeletePlans, mealPlan.ID)

	if req.Name != "" {
		mealPlan.Name = req.Name
	}
	if req.Ingredients != "" {
		mealPlan.Ingredients = req.Ingredients
	}
	if req.MealSlot != "" {
		mealPlan.MealSlot = req.MealSlot
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return domain.MealPlanResponse{}, domain.ErrInvalidMealPlanDate
		}
		mealPlan.Date = date
	}

	csApply, outcomes := Apply(ledger, ingredient.ParseList(mealPlan.Ingredients), mealPlan.ID, mealPlan.OwnerID, s.consumedOn(mealPlan))
	csApply.SettlementCreates = append(csApply.SettlementCreates, newSettlement(mealPlan))
	// The plan row commits in the same transaction as the restore/apply pair
	// so the stored ingredient list always matches the applied consumption.
	csApply.PlanUpdates = append(csApply.PlanUpdates, mealPlan)

	if err := s.mealPlanRepository.ApplyChangeSets(ctx, csRestore, csApply); err != nil {
		return domain.MealPlanResponse{}, err
	}

	return toMealPlanResponse(mealPlan, outcomes), nil
}

func (s *mealPlanService) DeleteMealPlan(ctx context.Context, id string, ownerID string) error {
	s.locks.Lock(ownerID)
	defer s.locks.Unlock(ownerID)

	mealPlan, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}

	records, err := s.foodRepository.GetConsumptionRecordsByMealPlan(ctx, id)
	if err != nil {
		return err
	}

	ledger, err := s.loadLedger(ctx, ownerID)
	if err != nil {
		return err
	}

	cs, _ := Restore(ledger, records)
	cs.SettlementDeletePlans = append(cs.SettlementDeletePlans, mealPlan.ID)
	if err := s.mealPlanRepository.ApplyChangeSets(ctx, cs); err != nil {
		return err
	}

	return s.mealPlanRepository.DeleteMealPlan(ctx, id)
}

func (s *mealPlanService) GetMealPlans(ctx context.Context, ownerID string, page, limit int) ([]domain.MealPlanResponse, int64, error) {
	mealPlans, count, err := s.mealPlanRepository.GetMealPlans(ctx, ownerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.MealPlanResponse, 0, len(mealPlans))
	for _, mealPlan := range mealPlans {
		response = append(response, toMealPlanResponse(mealPlan, nil))
	}

	return response, count, nil
}

func (s *mealPlanService) GetMealPlanByID(ctx context.Context, id string, ownerID string) (domain.MealPlanResponse, error) {
	mealPlan, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return domain.MealPlanResponse{}, err
	}
	return toMealPlanResponse(mealPlan, nil), nil
}

// SettleMealPlan applies consumption for a past-dated plan whose marker is
// missing, backdating the ledger entries to the plan's date. A present marker
// makes the call a no-op reporting AlreadySettled.
func (s *mealPlanService) SettleMealPlan(ctx context.Context, id string, ownerID string) (domain.SettleMealPlanResponse, error) {
	s.locks.Lock(ownerID)
	defer s.locks.Unlock(ownerID)

	mealPlan, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return domain.SettleMealPlanResponse{}, err
	}

	settlementDate := calendar.StartOfDay(mealPlan.Date)
	if !settlementDate.Before(calendar.StartOfToday(s.clock)) {
		return domain.SettleMealPlanResponse{}, domain.ErrMealPlanNotDue
	}

	if _, err := s.mealPlanRepository.GetSettlement(ctx, id, settlementDate); err == nil {
		return domain.SettleMealPlanResponse{
			MealPlanID:     mealPlan.ID.String(),
			SettlementDate: settlementDate,
			AlreadySettled: true,
		}, nil
	} else if !food.IsNotFound(err) {
		return domain.SettleMealPlanResponse{}, err
	}

	ledger, err := s.loadLedger(ctx, ownerID)
	if err != nil {
		return domain.SettleMealPlanResponse{}, err
	}

	cs, outcomes := Apply(ledger, ingredient.ParseList(mealPlan.Ingredients), mealPlan.ID, mealPlan.OwnerID, mealPlan.Date)
	cs.SettlementCreates = append(cs.SettlementCreates, newSettlement(mealPlan))

	if err := s.mealPlanRepository.ApplyChangeSets(ctx, cs); err != nil {
		return domain.SettleMealPlanResponse{}, err
	}

	return domain.SettleMealPlanResponse{
		MealPlanID:     mealPlan.ID.String(),
		SettlementDate: settlementDate,
		Outcomes:       outcomes,
	}, nil
}

func (s *mealPlanService) getOwned(ctx context.Context, id string, ownerID string) (*entities.MealPlan, error) {
	mealPlan, err := s.mealPlanRepository.GetMealPlanByID(ctx, id)
	if err != nil {
		if food.IsNotFound(err) {
			return nil, domain.ErrMealPlanNotFound
		}
		return nil, err
	}
	if mealPlan.OwnerID.String() != ownerID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return mealPlan, nil
}

func (s *mealPlanService) loadLedger(ctx context.Context, ownerID string) (*Ledger, error) {
	items, err := s.foodRepository.GetFoodItemsByStatus(ctx, ownerID, []string{entities.StatusUnreserved})
	if err != nil {
		return nil, err
	}
	reservations, err := s.reservationRepository.GetReservations(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &Ledger{Items: items, Reservations: reservations}, nil
}

// consumedOn backdates ledger entries to the plan's date when the plan is
// already in the past; otherwise they carry the current instant.
func (s *mealPlanService) consumedOn(mealPlan *entities.MealPlan) time.Time {
	if calendar.StartOfDay(mealPlan.Date).Before(calendar.StartOfToday(s.clock)) {
		return mealPlan.Date
	}
	return s.clock.Now()
}

func newSettlement(mealPlan *entities.MealPlan) *entities.MealSettlement {
	return &entities.MealSettlement{
		ID:             uuid.New(),
		OwnerID:        mealPlan.OwnerID,
		MealPlanID:     mealPlan.ID,
		SettlementDate: calendar.StartOfDay(mealPlan.Date),
	}
}

func toMealPlanResponse(mealPlan *entities.MealPlan, outcomes []domain.IngredientOutcome) domain.MealPlanResponse {
	return domain.MealPlanResponse{
		ID:          mealPlan.ID.String(),
		Name:        mealPlan.Name,
		Ingredients: mealPlan.Ingredients,
		Date:        mealPlan.Date,
		MealSlot:    mealPlan.MealSlot,
		Outcomes:    outcomes,
		CreatedAt:   mealPlan.CreatedAt,
	}
}
