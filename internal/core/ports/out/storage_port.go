package out

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/suchimauz/pet-clinic-core/internal/core/domain"
)

type AppointmentStoragePort interface {
	CreateAppointment(ctx context.Context, appointment *domain.Appointment) error
	GetAppointmentByID(ctx context.Context, id uint) (*domain.Appointment, error)
	ListCustomerAppointments(ctx context.Context, customerID int64) ([]domain.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id uint, status string) (*domain.Appointment, error)
}

type InvoiceStoragePort interface {
	CreateInvoice(ctx context.Context, invoice *domain.Invoice) error
	GetInvoiceByID(ctx context.Context, id snowflake.ID) (*domain.Invoice, error)
	MarkInvoicePaid(ctx context.Context, id snowflake.ID, paidAt time.Time) (*domain.Invoice, error)

	// Сумма оплаченных счетов клиента за период [from, to)
	SumPaidInvoices(ctx context.Context, customerID int64, from, to time.Time) (int64, error)
}
