package in

import (
	"context"

	"github.com/suchimauz/pet-clinic-core/internal/core/domain"
	"github.com/suchimauz/pet-clinic-core/internal/core/normalizer"
)

type AppointmentUseCase interface {
	// Проверка данных формы без сохранения
	NormalizeAppointment(raw domain.RawAppointmentInput) normalizer.Result

	CreateAppointment(ctx context.Context, raw domain.RawAppointmentInput) (*domain.Appointment, error)
	GetAppointment(ctx context.Context, id uint) (*domain.Appointment, error)
	ListCustomerAppointments(ctx context.Context, customerID int64) ([]domain.Appointment, error)

	// Статус приходит в английском варианте фронтенда
	UpdateAppointmentStatus(ctx context.Context, id uint, frontendStatus string) (*domain.Appointment, error)
}
