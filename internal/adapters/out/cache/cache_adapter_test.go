package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/pet-clinic-core/internal/adapters/out/logger"
	"github.com/suchimauz/pet-clinic-core/internal/config"
	"github.com/suchimauz/pet-clinic-core/internal/core/domain"
	"go.uber.org/zap"
)

func summary(customerID int64, year int) domain.MembershipSummary {
	return domain.MembershipSummary{
		CustomerID:  customerID,
		Year:        year,
		YearlySpend: 6_000_000,
		Level:       domain.MembershipLevelLoyal,
	}
}

func TestMembershipCache(t *testing.T) {
	ctx := context.Background()
	c := newCacheAdapter(2, time.Minute, logger.NewFromZap(zap.NewNop()))

	_, ok := c.GetMembership(ctx, 1, 2025)
	assert.False(t, ok)

	c.StoreMembership(ctx, summary(1, 2025))
	got, ok := c.GetMembership(ctx, 1, 2025)
	require.True(t, ok)
	assert.Equal(t, domain.MembershipLevelLoyal, got.Level)

	// Запись за прошлый год не отдается
	_, ok = c.GetMembership(ctx, 1, 2026)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	c.StoreMembership(ctx, summary(1, 2025))
	c.StoreMembership(ctx, summary(2, 2025))
	c.InvalidateMembership(ctx, 1)
	_, ok = c.GetMembership(ctx, 1, 2025)
	assert.False(t, ok)
	_, ok = c.GetMembership(ctx, 2, 2025)
	assert.True(t, ok)

	c.InvalidateAllMemberships(ctx)
	assert.Equal(t, 0, c.Len())
}

func TestMembershipCacheEvictsOldest(t *testing.T) {
	ctx := context.Background()
	c := newCacheAdapter(2, time.Minute, logger.NewFromZap(zap.NewNop()))

	c.StoreMembership(ctx, summary(1, 2025))
	c.StoreMembership(ctx, summary(2, 2025))
	c.StoreMembership(ctx, summary(3, 2025))

	_, ok := c.GetMembership(ctx, 1, 2025)
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestNewCacheAdapterDisabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = false
	assert.Nil(t, NewCacheAdapter(cfg, logger.NewFromZap(zap.NewNop())))
}
