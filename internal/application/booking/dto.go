package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/mobelhaus/storefront/internal/domain/booking"
)

// RequestConsultationRequest represents a consultation booking submission
type RequestConsultationRequest struct {
	CustomerName string    `json:"customer_name" binding:"required,min=1,max=200"`
	Email        string    `json:"email" binding:"required,email"`
	Phone        string    `json:"phone"`
	Topic        string    `json:"topic" binding:"required,min=1,max=200"`
	Notes        string    `json:"notes"`
	PreferredAt  time.Time `json:"preferred_at" binding:"required"`
}

// ConsultationResponse represents a consultation in API responses
type ConsultationResponse struct {
	ID           uuid.UUID                  `json:"id"`
	OwnerID      *uuid.UUID                 `json:"owner_id,omitempty"`
	CustomerName string                     `json:"customer_name"`
	Email        string                     `json:"email"`
	Phone        string                     `json:"phone,omitempty"`
	Topic        string                     `json:"topic"`
	Notes        string                     `json:"notes,omitempty"`
	PreferredAt  time.Time                  `json:"preferred_at"`
	Status       booking.ConsultationStatus `json:"status"`
	CreatedAt    time.Time                  `json:"created_at"`
}

// ToConsultationResponse converts a domain Consultation to a response DTO
func ToConsultationResponse(c *booking.Consultation) ConsultationResponse {
	return ConsultationResponse{
		ID:           c.ID,
		OwnerID:      c.OwnerID,
		CustomerName: c.CustomerName,
		Email:        c.Email,
		Phone:        c.Phone,
		Topic:        c.Topic,
		Notes:        c.Notes,
		PreferredAt:  c.PreferredAt,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
	}
}
