package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mobelhaus/storefront/internal/domain/shared"
)

// ConsultationStatus represents the lifecycle state of a consultation request
type ConsultationStatus string

const (
	StatusRequested ConsultationStatus = "requested"
	StatusConfirmed ConsultationStatus = "confirmed"
	StatusDeclined  ConsultationStatus = "declined"
	StatusCompleted ConsultationStatus = "completed"
)

// CanTransitionTo checks if a status transition is valid
func (s ConsultationStatus) CanTransitionTo(target ConsultationStatus) bool {
	transitions := map[ConsultationStatus][]ConsultationStatus{
		StatusRequested: {StatusConfirmed, StatusDeclined},
		StatusConfirmed: {StatusCompleted, StatusDeclined},
		StatusDeclined:  {},
		StatusCompleted: {},
	}
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Consultation is an in-store or video design consultation booked by a
// customer. OwnerID is nil when booked without an account.
type Consultation struct {
	shared.BaseAggregateRoot
	OwnerID      *uuid.UUID         `gorm:"type:uuid;index"`
	CustomerName string             `gorm:"not null"`
	Email        string             `gorm:"not null"`
	Phone        string
	Topic        string             `gorm:"not null"`
	Notes        string             `gorm:"type:text"`
	PreferredAt  time.Time          `gorm:"not null"`
	Status       ConsultationStatus `gorm:"not null;default:'requested'"`
}

// TableName maps Consultation to the consultations table
func (Consultation) TableName() string {
	return "consultations"
}

// NewConsultation creates a consultation request in the requested state.
// The preferred time must lie in the future.
func NewConsultation(ownerID *uuid.UUID, customerName, email, phone, topic, notes string, preferredAt time.Time) (*Consultation, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, shared.NewDomainError("INVALID_TOPIC", "Consultation topic cannot be empty")
	}
	if !preferredAt.After(time.Now()) {
		return nil, shared.NewDomainError("INVALID_TIME", "Preferred time must be in the future")
	}

	return &Consultation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		CustomerName:      customerName,
		Email:             email,
		Phone:             strings.TrimSpace(phone),
		Topic:             topic,
		Notes:             strings.TrimSpace(notes),
		PreferredAt:       preferredAt,
		Status:            StatusRequested,
	}, nil
}

// Confirm accepts the requested consultation
func (c *Consultation) Confirm() error {
	return c.transition(StatusConfirmed)
}

// Decline rejects a requested or confirmed consultation
func (c *Consultation) Decline() error {
	return c.transition(StatusDeclined)
}

// Complete marks a confirmed consultation as held
func (c *Consultation) Complete() error {
	return c.transition(StatusCompleted)
}

func (c *Consultation) transition(target ConsultationStatus) error {
	if !c.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("Cannot transition consultation from %s to %s", c.Status, target))
	}
	c.Status = target
	c.UpdatedAt = time.Now()
	return nil
}
