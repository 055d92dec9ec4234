package models

type User struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Username    string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	DisplayName string `gorm:"type:varchar(255);not null" json:"display_name"`

	// Relations
	Tasks []Task `gorm:"foreignKey:AssignedTo" json:"-"`
}
