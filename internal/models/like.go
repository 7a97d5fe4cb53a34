package models

import (
	"fmt"

	"github.com/google/uuid"
)

// LikeKind names the kind of entity a like points at.
type LikeKind string

const (
	LikeKindVideo   LikeKind = "video"
	LikeKindComment LikeKind = "comment"
	LikeKindTweet   LikeKind = "tweet"
)

// Valid reports whether k is one of the known like kinds.
func (k LikeKind) Valid() bool {
	switch k {
	case LikeKindVideo, LikeKindComment, LikeKindTweet:
		return true
	}
	return false
}

// LikeTarget identifies exactly one likeable entity.
type LikeTarget struct {
	Kind     LikeKind  `gorm:"column:target_kind;type:varchar(16);not null;uniqueIndex:idx_like_subject_target,priority:2;index:idx_like_target,priority:1" json:"kind"`
	EntityID uuid.UUID `gorm:"column:target_id;type:uuid;not null;uniqueIndex:idx_like_subject_target,priority:3;index:idx_like_target,priority:2" json:"id"`
}

// Validate rejects unknown kinds and nil identifiers.
func (t LikeTarget) Validate() error {
	if !t.Kind.Valid() {
		return NewValidationError(fmt.Sprintf("Unknown like target kind %q", t.Kind))
	}
	if t.EntityID == uuid.Nil {
		return NewValidationError("Like target ID is required")
	}
	return nil
}

// Like records that LikedBy likes Target. A (LikedBy, Target) pair appears at most once.
type Like struct {
	Base
	LikedByID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_like_subject_target,priority:1" json:"likedBy"`
	Target    LikeTarget `gorm:"embedded" json:"target"`

	// Video is filled in by listings that join the liked video.
	Video *Video `gorm:"-" json:"video,omitempty"`
}
