package services

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/pet-clinic-core/internal/adapters/out/logger"
	"github.com/suchimauz/pet-clinic-core/internal/core/domain"
	"go.uber.org/zap"
)

func newTestMembershipService(t *testing.T, cache *fakeCache) (*MembershipService, *fakeInvoiceStorage) {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	storage := newFakeInvoiceStorage()
	var svc *MembershipService
	if cache == nil {
		svc = NewMembershipService(storage, nil, node, loc, logger.NewFromZap(zap.NewNop()))
	} else {
		svc = NewMembershipService(storage, cache, node, loc, logger.NewFromZap(zap.NewNop()))
	}
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, loc) }
	return svc, storage
}

func payNew(t *testing.T, svc *MembershipService, customerID, amount int64) *domain.Invoice {
	t.Helper()
	ctx := context.Background()
	invoice, err := svc.CreateInvoice(ctx, customerID, nil, amount)
	require.NoError(t, err)
	paid, err := svc.PayInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	return paid
}

func TestCreateInvoiceRejectsNonPositiveAmount(t *testing.T) {
	svc, _ := newTestMembershipService(t, nil)

	_, err := svc.CreateInvoice(context.Background(), 1, nil, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = svc.CreateInvoice(context.Background(), 1, nil, -5)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestGetMembershipTiers(t *testing.T) {
	svc, _ := newTestMembershipService(t, nil)
	ctx := context.Background()

	summary, err := svc.GetMembership(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.MembershipLevelBasic, summary.Level)
	require.NotNil(t, summary.Next)
	assert.Equal(t, domain.NextTierInfo{NextTier: domain.MembershipLevelLoyal, AmountNeeded: 5_000_000}, *summary.Next)
	assert.Equal(t, 2025, summary.Year)

	payNew(t, svc, 1, 5_000_000)
	summary, err = svc.GetMembership(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.MembershipLevelLoyal, summary.Level)
	assert.Equal(t, float64(7_000_000), summary.Next.AmountNeeded)

	payNew(t, svc, 1, 7_000_000)
	summary, err = svc.GetMembership(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.MembershipLevelVIP, summary.Level)
	assert.Nil(t, summary.Next)
	assert.Equal(t, int64(12_000_000), summary.YearlySpend)
}

func TestGetMembershipIgnoresUnpaidAndOtherYears(t *testing.T) {
	svc, storage := newTestMembershipService(t, nil)
	ctx := context.Background()

	_, err := svc.CreateInvoice(ctx, 1, nil, 20_000_000)
	require.NoError(t, err)

	old := payNew(t, svc, 1, 20_000_000)
	lastYear := time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC)
	stored := storage.invoices[old.ID]
	stored.PaidAt = &lastYear
	storage.invoices[old.ID] = stored

	summary, err := svc.GetMembership(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.MembershipLevelBasic, summary.Level)
	assert.Zero(t, summary.YearlySpend)
}

func TestGetMembershipUsesCacheAndPayInvalidates(t *testing.T) {
	cache := newFakeCache()
	svc, storage := newTestMembershipService(t, cache)
	ctx := context.Background()

	_, err := svc.GetMembership(ctx, 1)
	require.NoError(t, err)
	_, err = svc.GetMembership(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, storage.sumCalls)

	payNew(t, svc, 1, 6_000_000)
	_, cached := cache.GetMembership(ctx, 1, 2025)
	assert.False(t, cached)

	summary, err := svc.GetMembership(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.MembershipLevelLoyal, summary.Level)
	assert.Equal(t, 2, storage.sumCalls)

	svc.InvalidateAllMembershipCache(ctx)
	_, cached = cache.GetMembership(ctx, 1, 2025)
	assert.False(t, cached)
}

func TestPayInvoiceTwice(t *testing.T) {
	svc, _ := newTestMembershipService(t, nil)
	ctx := context.Background()

	invoice := payNew(t, svc, 1, 100)
	_, err := svc.PayInvoice(ctx, invoice.ID)
	assert.ErrorIs(t, err, domain.ErrInvoiceAlreadyPaid)

	_, err = svc.PayInvoice(ctx, snowflake.ID(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
