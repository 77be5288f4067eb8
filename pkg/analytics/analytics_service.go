package analytics

import (
	"Pantry-Ledger/domain"
	"Pantry-Ledger/internal/utils/calendar"
	"Pantry-Ledger/pkg/expiry"
	"context"
	"log"
	"time"
)

type (
	// AnalyticsService summarizes consumed, donated and expired quantities
	// over the current business-calendar day or month. An expiry sweep runs
	// first so the expired numbers are current. Aggregation failures degrade
	// to zero breakdowns instead of failing the summary.
	AnalyticsService interface {
		Summary(ctx context.Context, ownerID string, rangeKind string) (domain.AnalyticsSummaryResponse, error)
	}

	analyticsService struct {
		analyticsRepository AnalyticsRepository
		expiryService       expiry.ExpiryService
		clock               calendar.Clock
	}
)

func NewAnalyticsService(analyticsRepository AnalyticsRepository, expiryService expiry.ExpiryService, clock calendar.Clock) AnalyticsService {
	return &analyticsService{
		analyticsRepository: analyticsRepository,
		expiryService:       expiryService,
		clock:               clock,
	}
}

func (s *analyticsService) Summary(ctx context.Context, ownerID string, rangeKind string) (domain.AnalyticsSummaryResponse, error) {
	var start, end time.Time
	switch rangeKind {
	case domain.RangeDay:
		start, end = calendar.DayWindow(s.clock)
	case domain.RangeMonth:
		start, end = calendar.MonthWindow(s.clock)
	default:
		return domain.AnalyticsSummaryResponse{}, domain.ErrInvalidRangeKind
	}

	if _, err := s.expiryService.SweepOwner(ctx, ownerID); err != nil {
		log.Printf("expiry sweep before analytics failed: %s", err)
	}

	return domain.AnalyticsSummaryResponse{
		Range: rangeKind,
		Start: start,
		End:   end,
		Consumed: s.breakdown(ctx, ownerID, start, end,
			s.analyticsRepository.SumConsumed, s.analyticsRepository.TopConsumed),
		Donated: s.breakdown(ctx, ownerID, start, end,
			s.analyticsRepository.SumDonated, s.analyticsRepository.TopDonated),
		Expired: s.breakdown(ctx, ownerID, start, end,
			s.analyticsRepository.SumExpired, s.analyticsRepository.TopExpired),
	}, nil
}

type (
	sumFunc func(ctx context.Context, ownerID string, start, end time.Time) (int, error)
	topFunc func(ctx context.Context, ownerID string, start, end time.Time) ([]domain.NameCount, error)
)

func (s *analyticsService) breakdown(ctx context.Context, ownerID string, start, end time.Time, sum sumFunc, top topFunc) domain.StateBreakdown {
	breakdown := domain.StateBreakdown{Top: []domain.NameCount{}}

	total, err := sum(ctx, ownerID, start, end)
	if err != nil {
		log.Printf("analytics sum failed: %s", err)
		return breakdown
	}
	breakdown.Total = total

	names, err := top(ctx, ownerID, start, end)
	if err != nil {
		log.Printf("analytics top names failed: %s", err)
		return breakdown
	}
	if names != nil {
		breakdown.Top = names
	}

	return breakdown
}
