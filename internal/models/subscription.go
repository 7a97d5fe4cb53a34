package models

import "github.com/google/uuid"

// Subscription records that Subscriber follows Channel. A pair appears at most once.
type Subscription struct {
	Base
	SubscriberID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscription_pair,priority:1" json:"subscriberId"`
	ChannelID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscription_pair,priority:2;index" json:"channelId"`

	Subscriber *User `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"`
	Channel    *User `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
}
