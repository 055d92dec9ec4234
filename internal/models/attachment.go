package models

import "time"

type FileType string

const (
	FileTypePDF   FileType = "pdf"
	FileTypeImage FileType = "image"
)

type Attachment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	NoteID    uint64    `gorm:"not null;index" json:"note_id"`
	Filename  string    `gorm:"type:varchar(255);not null" json:"filename"`
	FilePath  string    `gorm:"type:varchar(512);uniqueIndex;not null" json:"-"`
	FileType  FileType  `gorm:"type:varchar(20);not null" json:"file_type"`
	FileSize  int64     `gorm:"not null" json:"file_size"`
	CreatedAt time.Time `json:"created_at"`
}
