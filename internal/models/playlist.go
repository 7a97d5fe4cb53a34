package models

import (
	"time"

	"github.com/google/uuid"
)

// Playlist is a named, ordered collection of videos owned by a user.
type Playlist struct {
	Base
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"ownerId"`

	// Videos is filled in by the repository in playlist order.
	Videos []Video `gorm:"-" json:"videos"`
}

// PlaylistVideo is one membership row. The composite key keeps a video from
// appearing twice in the same playlist.
type PlaylistVideo struct {
	PlaylistID uuid.UUID `gorm:"type:uuid;primaryKey"`
	VideoID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position   int       `gorm:"not null"`
	CreatedAt  time.Time
}
