package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/partymoa/partymoa-server/internal/domain/entity"
	"github.com/partymoa/partymoa-server/internal/domain/repository"
	"github.com/partymoa/partymoa-server/pkg/apperr"
)

// LedgerService gates avatar customization behind the point balance. Spending
// reduces Points only; TotalPoints records lifetime earnings and never drops.
type LedgerService struct {
	Repo          repository.UserRepository
	Logger        *logrus.Logger
	AttributeCost int
}

func NewLedgerService(repo repository.UserRepository, logger *logrus.Logger, attributeCost int) *LedgerService {
	return &LedgerService{Repo: repo, Logger: logger, AttributeCost: attributeCost}
}

// Cost returns the price of a selection: a flat rate per attribute changed.
func (s *LedgerService) Cost(selection map[string]int) int {
	return s.AttributeCost * len(selection)
}

// PurchaseAvatarUpdate deducts the selection's cost and applies only the
// supplied attributes to the avatar mapping. The deduction and the balance
// check are one atomic storage operation, so concurrent purchases cannot
// overdraw.
func (s *LedgerService) PurchaseAvatarUpdate(ctx context.Context, userID string, selection map[string]int) (*entity.User, error) {
	if len(selection) == 0 {
		return nil, apperr.InvalidInput("avatar selection is empty")
	}
	for attr, variant := range selection {
		if attr == "" || variant < 1 {
			return nil, apperr.InvalidInput("invalid avatar selection")
		}
	}

	u, err := s.Repo.DeductPoints(ctx, userID, s.Cost(selection), selection)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficient):
			return nil, apperr.InsufficientFunds("not enough points")
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperr.NotFound("no such account")
		default:
			return nil, apperr.Internal(err)
		}
	}
	return u.Scrub(), nil
}
