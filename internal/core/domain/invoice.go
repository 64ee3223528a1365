package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type InvoiceStatus string

const (
	InvoiceStatusUnpaid InvoiceStatus = "Chưa thanh toán"
	InvoiceStatusPaid   InvoiceStatus = "Đã thanh toán"
)

type Invoice struct {
	ID            snowflake.ID  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CustomerID    int64         `gorm:"not null;index" json:"customer_id"`
	AppointmentID *uint         `gorm:"index" json:"appointment_id,omitempty"`
	Amount        int64         `gorm:"not null" json:"amount"`
	Status        InvoiceStatus `gorm:"type:text;not null" json:"status"`
	IssuedAt      time.Time     `gorm:"not null" json:"issued_at"`
	PaidAt        *time.Time    `gorm:"index" json:"paid_at,omitempty"`
}

func (Invoice) TableName() string { return "invoices" }

func (i Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// MembershipSummary вычисляется по оплаченным счетам за год и не хранится
type MembershipSummary struct {
	CustomerID  int64           `json:"customer_id"`
	Year        int             `json:"year"`
	YearlySpend int64           `json:"yearly_spend"`
	Level       MembershipLevel `json:"level"`
	Next        *NextTierInfo   `json:"next,omitempty"`
}
