package dto

import (
	"fmt"
	"time"

	"github.com/tasktracker/task-tracker-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64 `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// AttachmentDTO represents attachment metadata in API responses
type AttachmentDTO struct {
	ID          uint64          `json:"id"`
	NoteID      uint64          `json:"note_id"`
	Filename    string          `json:"filename"`
	FileType    models.FileType `json:"file_type"`
	FileSize    int64           `json:"file_size"`
	CreatedAt   time.Time       `json:"created_at"`
	DownloadURL string          `json:"download_url"`
}

// NoteDTO represents a note in API responses
type NoteDTO struct {
	ID          uint64          `json:"id"`
	TaskID      uint64          `json:"task_id"`
	Content     string          `json:"content"`
	CreatedAt   time.Time       `json:"created_at"`
	Attachments []AttachmentDTO `json:"attachments"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Status       models.TaskStatus `json:"status"`
	AssignedTo   uint64            `json:"assigned_to"`
	CreatedAt    time.Time         `json:"created_at"`
	CompletedAt  *time.Time        `json:"completed_at"`
	AssignedUser *UserDTO          `json:"assigned_user"`
	Notes        []NoteDTO         `json:"notes"`
}

// Conversion functions

// DownloadURL returns the download path for an attachment
func DownloadURL(attachmentID uint64) string {
	return fmt.Sprintf("/attachments/%d/download", attachmentID)
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}
	return items
}

// ToAttachmentDTO converts an Attachment model to AttachmentDTO
func ToAttachmentDTO(attachment models.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:          attachment.ID,
		NoteID:      attachment.NoteID,
		Filename:    attachment.Filename,
		FileType:    attachment.FileType,
		FileSize:    attachment.FileSize,
		CreatedAt:   attachment.CreatedAt,
		DownloadURL: DownloadURL(attachment.ID),
	}
}

// ToNoteDTO converts a Note model to NoteDTO
func ToNoteDTO(note models.Note) NoteDTO {
	dto := NoteDTO{
		ID:          note.ID,
		TaskID:      note.TaskID,
		Content:     note.Content,
		CreatedAt:   note.CreatedAt,
		Attachments: make([]AttachmentDTO, len(note.Attachments)),
	}
	for i, attachment := range note.Attachments {
		dto.Attachments[i] = ToAttachmentDTO(attachment)
	}
	return dto
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		AssignedTo:  task.AssignedTo,
		CreatedAt:   task.CreatedAt,
		CompletedAt: task.CompletedAt,
		Notes:       make([]NoteDTO, len(task.Notes)),
	}

	// Include assignee if preloaded
	if task.AssignedUser.ID != 0 {
		user := ToUserDTO(task.AssignedUser)
		dto.AssignedUser = &user
	}

	for i, note := range task.Notes {
		dto.Notes[i] = ToNoteDTO(note)
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
