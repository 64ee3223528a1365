package services

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/suchimauz/pet-clinic-core/internal/core/domain"
)

type fakeAppointmentStorage struct {
	mu           sync.Mutex
	nextID       uint
	appointments map[uint]domain.Appointment
	createCalls  int
}

func newFakeAppointmentStorage() *fakeAppointmentStorage {
	return &fakeAppointmentStorage{appointments: make(map[uint]domain.Appointment)}
}

func (f *fakeAppointmentStorage) CreateAppointment(ctx context.Context, appointment *domain.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.nextID++
	appointment.ID = f.nextID
	f.appointments[appointment.ID] = *appointment
	return nil
}

func (f *fakeAppointmentStorage) GetAppointmentByID(ctx context.Context, id uint) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appointment, ok := f.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &appointment, nil
}

func (f *fakeAppointmentStorage) ListCustomerAppointments(ctx context.Context, customerID int64) ([]domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Appointment
	for _, appointment := range f.appointments {
		if appointment.CustomerID == customerID {
			result = append(result, appointment)
		}
	}
	return result, nil
}

func (f *fakeAppointmentStorage) UpdateAppointmentStatus(ctx context.Context, id uint, status string) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appointment, ok := f.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	appointment.Status = status
	f.appointments[id] = appointment
	return &appointment, nil
}

type fakeInvoiceStorage struct {
	mu       sync.Mutex
	invoices map[snowflake.ID]domain.Invoice
	sumCalls int
}

func newFakeInvoiceStorage() *fakeInvoiceStorage {
	return &fakeInvoiceStorage{invoices: make(map[snowflake.ID]domain.Invoice)}
}

func (f *fakeInvoiceStorage) CreateInvoice(ctx context.Context, invoice *domain.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invoices[invoice.ID] = *invoice
	return nil
}

func (f *fakeInvoiceStorage) GetInvoiceByID(ctx context.Context, id snowflake.ID) (*domain.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	invoice, ok := f.invoices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &invoice, nil
}

func (f *fakeInvoiceStorage) MarkInvoicePaid(ctx context.Context, id snowflake.ID, paidAt time.Time) (*domain.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	invoice, ok := f.invoices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if invoice.IsPaid() {
		return nil, domain.ErrInvoiceAlreadyPaid
	}
	paid := paidAt.UTC()
	invoice.Status = domain.InvoiceStatusPaid
	invoice.PaidAt = &paid
	f.invoices[id] = invoice
	return &invoice, nil
}

func (f *fakeInvoiceStorage) SumPaidInvoices(ctx context.Context, customerID int64, from, to time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sumCalls++
	var total int64
	for _, invoice := range f.invoices {
		if invoice.CustomerID != customerID || !invoice.IsPaid() {
			continue
		}
		if invoice.PaidAt.Before(from) || !invoice.PaidAt.Before(to) {
			continue
		}
		total += invoice.Amount
	}
	return total, nil
}

type fakeCache struct {
	mu          sync.Mutex
	memberships map[int64]domain.MembershipSummary
}

func newFakeCache() *fakeCache {
	return &fakeCache{memberships: make(map[int64]domain.MembershipSummary)}
}

func (c *fakeCache) GetMembership(ctx context.Context, customerID int64, year int) (*domain.MembershipSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	summary, ok := c.memberships[customerID]
	if !ok || summary.Year != year {
		return nil, false
	}
	return &summary, true
}

func (c *fakeCache) StoreMembership(ctx context.Context, summary domain.MembershipSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.memberships[summary.CustomerID] = summary
}

func (c *fakeCache) InvalidateMembership(ctx context.Context, customerID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.memberships, customerID)
}

func (c *fakeCache) InvalidateAllMemberships(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.memberships = make(map[int64]domain.MembershipSummary)
}
