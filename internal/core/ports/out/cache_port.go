package out

import (
	"context"

	"github.com/suchimauz/pet-clinic-core/internal/core/domain"
)

type CachePort interface {
	// Кэширование карточки участника
	GetMembership(ctx context.Context, customerID int64, year int) (*domain.MembershipSummary, bool)
	StoreMembership(ctx context.Context, summary domain.MembershipSummary)
	InvalidateMembership(ctx context.Context, customerID int64)
	InvalidateAllMemberships(ctx context.Context)
}
