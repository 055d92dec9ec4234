package models

import "time"

type Note struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TaskID    uint64    `gorm:"not null;index" json:"task_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Attachments []Attachment `gorm:"foreignKey:NoteID" json:"attachments,omitempty"`
}
