package expiry

import (
	"Pantry-Ledger/entities"
	"Pantry-Ledger/internal/utils/calendar"
	"Pantry-Ledger/internal/utils/mailing"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
)

type (
	// ExpiryService lazily sweeps an owner's inventory, flipping rows whose
	// expiry date lies before today's business-calendar boundary into the
	// terminal expired state. Quantities are untouched; the transition is
	// one-way. Sweeps run before any read that depends on freshness.
	ExpiryService interface {
		SweepOwner(ctx context.Context, ownerID string) (int, error)
	}

	expiryService struct {
		expiryRepository ExpiryRepository
		clock            calendar.Clock
		digestEmail      string
	}
)

func NewExpiryService(expiryRepository ExpiryRepository, clock calendar.Clock, digestEmail string) ExpiryService {
	return &expiryService{
		expiryRepository: expiryRepository,
		clock:            clock,
		digestEmail:      digestEmail,
	}
}

func (s *expiryService) SweepOwner(ctx context.Context, ownerID string) (int, error) {
	boundary := calendar.StartOfToday(s.clock)

	candidates, err := s.expiryRepository.GetExpiredCandidates(ctx, ownerID, boundary)
	if err != nil {
		return 0, err
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(candidates))
	for _, item := range candidates {
		ids = append(ids, item.ID)
	}
	if err := s.expiryRepository.MarkExpired(ctx, ids); err != nil {
		return 0, err
	}

	// The digest is best effort; a mail failure never fails the sweep.
	if s.digestEmail != "" {
		go func(items []*entities.FoodItem) {
			if err := mailing.SendMail(s.digestEmail, "Items expired in your pantry", expiryDigestBody(items)); err != nil {
				log.Printf("expiry digest mail failed: %s", err)
			}
		}(candidates)
	}

	return len(candidates), nil
}

func expiryDigestBody(items []*entities.FoodItem) string {
	var b strings.Builder
	b.WriteString("<p>The following items passed their expiry date:</p><ul>")
	for _, item := range items {
		fmt.Fprintf(&b, "<li>%s x%d (expired %s)</li>", item.Name, item.Quantity, item.ExpiryDate.Format("2006-01-02"))
	}
	b.WriteString("</ul>")
	return b.String()
}
