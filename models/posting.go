package models

import (
	"time"

	"gorm.io/gorm"
)

// Posting is a recruitment listing for a project or study group.
type Posting struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Title          string          `gorm:"size:100;not null" json:"title"`
	Description    string          `gorm:"type:text;not null" json:"description"`
	Type           PostingType     `gorm:"size:20;not null" json:"type"`
	Status         PostingStatus   `gorm:"size:20;not null" json:"status"`
	MaxCapacity    int             `gorm:"not null" json:"max_capacity"`
	Latitude       float64         `json:"latitude"`
	Longitude      float64         `json:"longitude"`
	AuthorID       uint            `gorm:"index;not null" json:"author_id"`
	Author         User            `gorm:"foreignKey:AuthorID" json:"author"`
	Participations []Participation `gorm:"foreignKey:PostingID" json:"-"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}
