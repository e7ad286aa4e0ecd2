package models

import "time"

// Channel is a subscribed YouTube channel as cached in the document store.
type Channel struct {
	ChannelID       string    `db:"channel_id" json:"channelId"`
	Title           string    `db:"title" json:"title"`
	Description     string    `db:"description" json:"description"`
	Thumbnail       string    `db:"thumbnail" json:"thumbnail"`
	SubscribedSince time.Time `db:"subscribed_since" json:"subscribedSince"`
}
