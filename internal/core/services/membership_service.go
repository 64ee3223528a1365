package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/suchimauz/pet-clinic-core/internal/core/domain"
	"github.com/suchimauz/pet-clinic-core/internal/core/ports/out"
	"github.com/suchimauz/pet-clinic-core/internal/utils"
)

type MembershipService struct {
	storagePort out.InvoiceStoragePort
	cachePort   out.CachePort
	idNode      *snowflake.Node
	location    *time.Location
	now         func() time.Time
	logger      out.LoggerPort
}

func NewMembershipService(
	storagePort out.InvoiceStoragePort,
	cachePort out.CachePort,
	idNode *snowflake.Node,
	location *time.Location,
	logger out.LoggerPort,
) *MembershipService {
	return &MembershipService{
		storagePort: storagePort,
		cachePort:   cachePort,
		idNode:      idNode,
		location:    location,
		now:         time.Now,
		logger:      logger.WithModule("MembershipService"),
	}
}

func (s *MembershipService) CreateInvoice(ctx context.Context, customerID int64, appointmentID *uint, amount int64) (*domain.Invoice, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	invoice := &domain.Invoice{
		ID:            s.idNode.Generate(),
		CustomerID:    customerID,
		AppointmentID: appointmentID,
		Amount:        amount,
		Status:        domain.InvoiceStatusUnpaid,
		IssuedAt:      s.now().UTC(),
	}

	if err := s.storagePort.CreateInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("invoice.create.store_failed: %w", err)
	}

	s.logger.Info("invoice.create.success", out.LogFields{
		"invoiceId":  invoice.ID.String(),
		"customerId": customerID,
		"amount":     amount,
	})

	return invoice, nil
}

func (s *MembershipService) PayInvoice(ctx context.Context, invoiceID snowflake.ID) (*domain.Invoice, error) {
	invoice, err := s.storagePort.MarkInvoicePaid(ctx, invoiceID, s.now())
	if err != nil {
		s.logger.Warn("invoice.pay.failed", out.LogFields{
			"invoiceId": invoiceID.String(),
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("invoice.pay.failed: %w", err)
	}

	// Траты изменились - карточку нужно пересчитать
	s.InvalidateMembershipCache(ctx, invoice.CustomerID)

	s.logger.Info("invoice.pay.success", out.LogFields{
		"invoiceId":  invoiceID.String(),
		"customerId": invoice.CustomerID,
	})

	return invoice, nil
}

func (s *MembershipService) GetMembership(ctx context.Context, customerID int64) (*domain.MembershipSummary, error) {
	now := s.now().In(s.location)
	year := now.Year()

	// Проверяем кэш только если он включен
	if s.cachePort != nil {
		if summary, exists := s.cachePort.GetMembership(ctx, customerID, year); exists {
			return summary, nil
		}
	}

	spend, err := s.storagePort.SumPaidInvoices(ctx, customerID, utils.StartCurrentYear(now), utils.StartNextYear(now))
	if err != nil {
		s.logger.Error("membership.spend.fetch_failed", out.LogFields{
			"customerId": customerID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("membership.spend.fetch_failed: %w", err)
	}

	level := domain.TierFor(float64(spend))
	summary := domain.MembershipSummary{
		CustomerID:  customerID,
		Year:        year,
		YearlySpend: spend,
		Level:       level,
	}
	if next, ok := domain.NextTier(level, float64(spend)); ok {
		summary.Next = &next
	}

	if s.cachePort != nil {
		s.cachePort.StoreMembership(ctx, summary)
	}

	s.logger.Debug("membership.computed", out.LogFields{
		"customerId": customerID,
		"spend":      spend,
		"level":      level,
	})

	return &summary, nil
}

func (s *MembershipService) InvalidateMembershipCache(ctx context.Context, customerID int64) {
	if s.cachePort == nil {
		return
	}
	s.cachePort.InvalidateMembership(ctx, customerID)
}

func (s *MembershipService) InvalidateAllMembershipCache(ctx context.Context) {
	if s.cachePort == nil {
		return
	}
	s.cachePort.InvalidateAllMemberships(ctx)
}
