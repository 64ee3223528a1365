package services

import (
	"context"
	"fmt"
	"time"

	"github.com/suchimauz/pet-clinic-core/internal/core/domain"
	"github.com/suchimauz/pet-clinic-core/internal/core/normalizer"
	"github.com/suchimauz/pet-clinic-core/internal/core/ports/out"
	"github.com/suchimauz/pet-clinic-core/internal/utils"
)

type AppointmentService struct {
	storagePort out.AppointmentStoragePort
	normalizer  *normalizer.AppointmentNormalizer
	location    *time.Location
	logger      out.LoggerPort
}

func NewAppointmentService(
	storagePort out.AppointmentStoragePort,
	location *time.Location,
	logger out.LoggerPort,
) *AppointmentService {
	return &AppointmentService{
		storagePort: storagePort,
		normalizer:  normalizer.NewAppointmentNormalizer(location),
		location:    location,
		logger:      logger.WithModule("AppointmentService"),
	}
}

func (s *AppointmentService) NormalizeAppointment(raw domain.RawAppointmentInput) normalizer.Result {
	return s.normalizer.Normalize(raw)
}

func (s *AppointmentService) CreateAppointment(ctx context.Context, raw domain.RawAppointmentInput) (*domain.Appointment, error) {
	result := s.normalizer.Normalize(raw)

	switch result.Outcome {
	case normalizer.OutcomeIncomplete:
		s.logger.Debug("appointment.create.incomplete", out.LogFields{
			"missing": result.Missing,
		})
		return nil, fmt.Errorf("%w: missing %v", domain.ErrIncompleteAppointment, result.Missing)
	case normalizer.OutcomeInvalid:
		s.logger.Warn("appointment.create.invalid", out.LogFields{
			"error": result.Err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAppointment, result.Err)
	}

	payload := result.Payload
	appointmentTime, err := utils.ParseInstant(payload.AppointmentTime(), s.location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAppointment, err)
	}

	appointment := &domain.Appointment{
		CustomerID:      payload.CustomerID(),
		PetID:           payload.PetID(),
		BranchID:        payload.BranchID(),
		DoctorID:        payload.DoctorID(),
		AppointmentTime: appointmentTime.UTC(),
		Status:          string(domain.BackendStatusPending),
	}
	if notes, ok := raw["notes"].(string); ok {
		appointment.Notes = notes
	}

	if err := s.storagePort.CreateAppointment(ctx, appointment); err != nil {
		s.logger.Error("appointment.create.store_failed", out.LogFields{
			"customerId": appointment.CustomerID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("appointment.create.store_failed: %w", err)
	}

	s.logger.Info("appointment.create.success", out.LogFields{
		"appointmentId":   appointment.ID,
		"customerId":      appointment.CustomerID,
		"appointmentTime": payload.AppointmentTime(),
	})

	return appointment, nil
}

func (s *AppointmentService) GetAppointment(ctx context.Context, id uint) (*domain.Appointment, error) {
	return s.storagePort.GetAppointmentByID(ctx, id)
}

func (s *AppointmentService) ListCustomerAppointments(ctx context.Context, customerID int64) ([]domain.Appointment, error) {
	return s.storagePort.ListCustomerAppointments(ctx, customerID)
}

func (s *AppointmentService) UpdateAppointmentStatus(ctx context.Context, id uint, frontendStatus string) (*domain.Appointment, error) {
	backendStatus := domain.ToBackendLabel(frontendStatus)

	appointment, err := s.storagePort.UpdateAppointmentStatus(ctx, id, backendStatus)
	if err != nil {
		s.logger.Error("appointment.status.update_failed", out.LogFields{
			"appointmentId": id,
			"status":        frontendStatus,
			"error":         err.Error(),
		})
		return nil, fmt.Errorf("appointment.status.update_failed: %w", err)
	}

	s.logger.Info("appointment.status.updated", out.LogFields{
		"appointmentId": id,
		"status":        backendStatus,
	})

	return appointment, nil
}
