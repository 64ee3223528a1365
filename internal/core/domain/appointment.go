package domain

import (
	"encoding/json"
	"time"
)

// Сырые данные записи на прием из формы или API.
// Идентификаторы могут прийти строкой или числом, в camelCase или snake_case.
type RawAppointmentInput map[string]any

// CanonicalAppointmentPayload - проверенная запись на прием в формате API создания.
// Создается только через NewCanonicalAppointmentPayload.
type CanonicalAppointmentPayload struct {
	customerID      int64
	petID           int64
	branchID        int64
	doctorID        int64
	appointmentTime string
}

// NewCanonicalAppointmentPayload собирает payload, если все поля заполнены.
// Нулевой идентификатор считается отсутствующим.
func NewCanonicalAppointmentPayload(customerID, petID, branchID, doctorID int64, appointmentTime string) (CanonicalAppointmentPayload, bool) {
	if customerID == 0 || petID == 0 || branchID == 0 || doctorID == 0 || appointmentTime == "" {
		return CanonicalAppointmentPayload{}, false
	}

	return CanonicalAppointmentPayload{
		customerID:      customerID,
		petID:           petID,
		branchID:        branchID,
		doctorID:        doctorID,
		appointmentTime: appointmentTime,
	}, true
}

func (p CanonicalAppointmentPayload) CustomerID() int64       { return p.customerID }
func (p CanonicalAppointmentPayload) PetID() int64            { return p.petID }
func (p CanonicalAppointmentPayload) BranchID() int64         { return p.branchID }
func (p CanonicalAppointmentPayload) DoctorID() int64         { return p.doctorID }
func (p CanonicalAppointmentPayload) AppointmentTime() string { return p.appointmentTime }

type canonicalAppointmentWire struct {
	CustomerID      int64  `json:"customer_id"`
	PetID           int64  `json:"pet_id"`
	BranchID        int64  `json:"branch_id"`
	DoctorID        int64  `json:"doctor_id"`
	AppointmentTime string `json:"appointment_time"`
}

func (p CanonicalAppointmentPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(canonicalAppointmentWire{
		CustomerID:      p.customerID,
		PetID:           p.petID,
		BranchID:        p.branchID,
		DoctorID:        p.doctorID,
		AppointmentTime: p.appointmentTime,
	})
}

// Appointment - запись на прием в базе. Статус хранится на вьетнамском.
type Appointment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CustomerID      int64     `gorm:"not null;index" json:"customer_id"`
	PetID           int64     `gorm:"not null;index" json:"pet_id"`
	BranchID        int64     `gorm:"not null" json:"branch_id"`
	DoctorID        int64     `gorm:"not null;index" json:"doctor_id"`
	AppointmentTime time.Time `gorm:"not null;index" json:"appointment_time"`
	Status          string    `gorm:"type:text;not null" json:"status"`
	Notes           string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Appointment) TableName() string { return "appointments" }
