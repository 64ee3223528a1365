package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/suchimauz/pet-clinic-core/internal/core/domain"
	"github.com/suchimauz/pet-clinic-core/internal/core/ports/out"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type GormAdapter struct {
	db     *gorm.DB
	logger out.LoggerPort
}

// Open подключается к sqlite по DSN
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("storage.open: %w", err)
	}
	return db, nil
}

// Migrate создает или обновляет таблицы
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Appointment{}, &domain.Invoice{}); err != nil {
		return fmt.Errorf("storage.migrate: %w", err)
	}
	return nil
}

func NewGormAdapter(db *gorm.DB, logger out.LoggerPort) *GormAdapter {
	return &GormAdapter{
		db:     db,
		logger: logger,
	}
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func (a *GormAdapter) CreateAppointment(ctx context.Context, appointment *domain.Appointment) error {
	if err := a.db.WithContext(ctx).Create(appointment).Error; err != nil {
		a.logger.Error("storage.appointment.create_failed", out.LogFields{
			"customerId": appointment.CustomerID,
			"error":      err.Error(),
		})
		return err
	}

	a.logger.Debug("storage.appointment.created", out.LogFields{
		"appointmentId": appointment.ID,
	})
	return nil
}

func (a *GormAdapter) GetAppointmentByID(ctx context.Context, id uint) (*domain.Appointment, error) {
	var appointment domain.Appointment
	if err := a.db.WithContext(ctx).First(&appointment, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &appointment, nil
}

func (a *GormAdapter) ListCustomerAppointments(ctx context.Context, customerID int64) ([]domain.Appointment, error) {
	appointments := make([]domain.Appointment, 0)
	err := a.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		a.logger.Error("storage.appointment.list_failed", out.LogFields{
			"customerId": customerID,
			"error":      err.Error(),
		})
		return nil, err
	}
	return appointments, nil
}

func (a *GormAdapter) UpdateAppointmentStatus(ctx context.Context, id uint, status string) (*domain.Appointment, error) {
	var appointment domain.Appointment
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&appointment, id).Error; err != nil {
			return err
		}
		return tx.Model(&appointment).Update("status", status).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	appointment.Status = status

	a.logger.Debug("storage.appointment.status_updated", out.LogFields{
		"appointmentId": id,
		"status":        status,
	})
	return &appointment, nil
}

func (a *GormAdapter) CreateInvoice(ctx context.Context, invoice *domain.Invoice) error {
	if err := a.db.WithContext(ctx).Create(invoice).Error; err != nil {
		a.logger.Error("storage.invoice.create_failed", out.LogFields{
			"customerId": invoice.CustomerID,
			"error":      err.Error(),
		})
		return err
	}
	return nil
}

func (a *GormAdapter) GetInvoiceByID(ctx context.Context, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	if err := a.db.WithContext(ctx).First(&invoice, "id = ?", int64(id)).Error; err != nil {
		return nil, translateError(err)
	}
	return &invoice, nil
}

func (a *GormAdapter) MarkInvoicePaid(ctx context.Context, id snowflake.ID, paidAt time.Time) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&invoice, "id = ?", int64(id)).Error; err != nil {
			return err
		}
		if invoice.IsPaid() {
			return domain.ErrInvoiceAlreadyPaid
		}
		// В sqlite время хранится строкой, поэтому всегда пишем UTC
		return tx.Model(&invoice).Updates(map[string]any{
			"status":  domain.InvoiceStatusPaid,
			"paid_at": paidAt.UTC(),
		}).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	paid := paidAt.UTC()
	invoice.Status = domain.InvoiceStatusPaid
	invoice.PaidAt = &paid
	return &invoice, nil
}

func (a *GormAdapter) SumPaidInvoices(ctx context.Context, customerID int64, from, to time.Time) (int64, error) {
	var total int64
	err := a.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("customer_id = ? AND status = ? AND paid_at >= ? AND paid_at < ?",
			customerID, domain.InvoiceStatusPaid, from.UTC(), to.UTC()).
		Scan(&total).Error
	if err != nil {
		a.logger.Error("storage.invoice.sum_failed", out.LogFields{
			"customerId": customerID,
			"error":      err.Error(),
		})
		return 0, err
	}
	return total, nil
}
