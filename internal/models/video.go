package models

import "github.com/google/uuid"

// Video is an uploaded video owned by a channel.
type Video struct {
	Base
	VideoFile   string    `gorm:"not null" json:"videoFile"`
	Thumbnail   string    `gorm:"not null" json:"thumbnail"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Duration    float64   `gorm:"not null" json:"duration"`
	Views       int64     `gorm:"not null" json:"views"`
	IsPublished bool      `gorm:"not null;index" json:"isPublished"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"ownerId"`
	Owner       *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}
