package models

// User is a channel owner and the acting subject of authenticated requests.
// Accounts are managed by the identity service; this table only mirrors the
// public profile needed for joins.
type User struct {
	Base
	Username   string `gorm:"uniqueIndex;not null" json:"username"`
	Email      string `gorm:"uniqueIndex;not null" json:"email,omitempty"`
	FullName   string `gorm:"not null" json:"fullName"`
	Avatar     string `json:"avatar"`
	CoverImage string `json:"coverImage,omitempty"`
}

// ProfileColumns is the projection used when a user is joined onto another entity.
var ProfileColumns = []string{"id", "username", "full_name", "avatar"}
