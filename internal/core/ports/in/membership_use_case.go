package in

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/suchimauz/pet-clinic-core/internal/core/domain"
)

type MembershipUseCase interface {
	CreateInvoice(ctx context.Context, customerID int64, appointmentID *uint, amount int64) (*domain.Invoice, error)
	PayInvoice(ctx context.Context, invoiceID snowflake.ID) (*domain.Invoice, error)

	GetMembership(ctx context.Context, customerID int64) (*domain.MembershipSummary, error)

	// Сброс кэша по событиям из брокера
	InvalidateMembershipCache(ctx context.Context, customerID int64)
	InvalidateAllMembershipCache(ctx context.Context)
}
