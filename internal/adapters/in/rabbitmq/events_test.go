package rabbitmq

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/pet-clinic-core/internal/adapters/out/logger"
	"github.com/suchimauz/pet-clinic-core/internal/config"
	"github.com/suchimauz/pet-clinic-core/internal/core/domain"
	"go.uber.org/zap"
)

type recordingUseCase struct {
	invalidated    []int64
	invalidatedAll int
}

func (r *recordingUseCase) CreateInvoice(ctx context.Context, customerID int64, appointmentID *uint, amount int64) (*domain.Invoice, error) {
	return nil, nil
}

func (r *recordingUseCase) PayInvoice(ctx context.Context, invoiceID snowflake.ID) (*domain.Invoice, error) {
	return nil, nil
}

func (r *recordingUseCase) GetMembership(ctx context.Context, customerID int64) (*domain.MembershipSummary, error) {
	return nil, nil
}

func (r *recordingUseCase) InvalidateMembershipCache(ctx context.Context, customerID int64) {
	r.invalidated = append(r.invalidated, customerID)
}

func (r *recordingUseCase) InvalidateAllMembershipCache(ctx context.Context) {
	r.invalidatedAll++
}

func newTestListener(useCase *recordingUseCase) *MembershipEventListener {
	return newMembershipEventListener(useCase, &config.Config{}, logger.NewFromZap(zap.NewNop()), nil, nil)
}

func TestParseEventRoutingKey(t *testing.T) {
	key, err := parseEventRoutingKey("clinic.membership-svc.customer.42.invalidate")
	require.NoError(t, err)
	assert.Equal(t, EventRoutingKey{
		Source:       "clinic",
		Receiver:     "membership-svc",
		ResourceType: EventResourceTypeCustomer,
		ResourceID:   "42",
		Action:       EventActionInvalidate,
	}, key)

	_, err = parseEventRoutingKey("clinic.membership-svc.customer")
	assert.Error(t, err)
}

func TestHandleEvent(t *testing.T) {
	ctx := context.Background()
	useCase := &recordingUseCase{}
	l := newTestListener(useCase)

	require.NoError(t, l.handleEvent(ctx, "clinic.membership-svc.customer.42.invalidate", nil))
	require.NoError(t, l.handleEvent(ctx, "clinic.membership-svc.invoice.1794.invalidate", []byte(`{"invoice_id":"1794","customer_id":7}`)))
	require.NoError(t, l.handleEvent(ctx, "clinic.membership-svc._all_.0.invalidate", nil))
	require.NoError(t, l.handleEvent(ctx, "clinic.membership-svc.customer.42.store", nil))
	require.NoError(t, l.handleEvent(ctx, "clinic.membership-svc.pet.1.invalidate", nil))

	assert.Equal(t, []int64{42, 7}, useCase.invalidated)
	assert.Equal(t, 1, useCase.invalidatedAll)
}

func TestHandleEventRejectsBrokenMessages(t *testing.T) {
	ctx := context.Background()
	useCase := &recordingUseCase{}
	l := newTestListener(useCase)

	assert.Error(t, l.handleEvent(ctx, "broken", nil))
	assert.Error(t, l.handleEvent(ctx, "clinic.membership-svc.customer.abc.invalidate", nil))
	assert.Error(t, l.handleEvent(ctx, "clinic.membership-svc.invoice.1.invalidate", []byte(`{`)))
	assert.Error(t, l.handleEvent(ctx, "clinic.membership-svc.invoice.1.invalidate", []byte(`{"invoice_id":"1"}`)))
	assert.Empty(t, useCase.invalidated)
}

func TestStopOnNilListener(t *testing.T) {
	var l *MembershipEventListener
	assert.NoError(t, l.Stop())
}
