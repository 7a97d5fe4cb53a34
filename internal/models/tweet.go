package models

import "github.com/google/uuid"

// Tweet is a short text post on a channel.
type Tweet struct {
	Base
	Content string    `gorm:"type:text;not null" json:"content"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"ownerId"`
	Owner   *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}
