package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReminderTemplate struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Type     string    `gorm:"type:varchar(20);not null" json:"type"` // due_soon, overdue
	Message  string    `gorm:"type:text;not null" json:"message"`
	IsActive bool      `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ReminderLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	InvoiceID  uuid.UUID `gorm:"type:uuid;index;not null" json:"invoiceId"`
	TemplateID uuid.UUID `gorm:"type:uuid;index;not null" json:"templateId"`

	Type         string `gorm:"type:varchar(20)" json:"type"` // due_soon, overdue
	Message      string `gorm:"type:text" json:"message"`
	Status       string `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage string `gorm:"type:text" json:"errorMessage,omitempty"`
	Channel      string `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms

	SentAt    time.Time `json:"sentAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
