package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "Pending"
	TaskStatusCompleted TaskStatus = "Completed"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	return s == TaskStatusPending || s == TaskStatusCompleted
}

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"not null;index" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	AssignedTo  uint64     `gorm:"not null;index" json:"assigned_to"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Relations
	AssignedUser User   `gorm:"foreignKey:AssignedTo" json:"assigned_user,omitempty"`
	Notes        []Note `gorm:"foreignKey:TaskID" json:"notes,omitempty"`
}

// MarkCompleted sets the status to Completed and stamps the completion time.
func (t *Task) MarkCompleted(at time.Time) {
	t.Status = TaskStatusCompleted
	t.CompletedAt = &at
}

// MarkPending sets the status back to Pending and clears the completion time.
func (t *Task) MarkPending() {
	t.Status = TaskStatusPending
	t.CompletedAt = nil
}
