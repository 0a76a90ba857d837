package models

import (
	"time"

	"gorm.io/gorm"
)

// Participation is a user's request to join a posting, subject to the
// author's approval. At most one active record exists per
// (posting, participant) pair; withdrawn records are soft deleted.
type Participation struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	PostingID     uint                `gorm:"not null;index:idx_participations_posting" json:"posting_id"`
	Posting       Posting             `gorm:"foreignKey:PostingID" json:"-"`
	ParticipantID uint                `gorm:"index;not null" json:"participant_id"`
	Participant   User                `gorm:"foreignKey:ParticipantID" json:"participant"`
	Status        ParticipationStatus `gorm:"size:16;not null" json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	DeletedAt     gorm.DeletedAt      `gorm:"index:idx_participations_posting" json:"-"`
}
