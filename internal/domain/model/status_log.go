package model

import "time"

// StatusChangeLog is one entry of the moderation conversation attached to
// a media item. Entries are append-only and ordered by creation time.
type StatusChangeLog struct {
	ID        string     `json:"id"`
	MediaID   string     `json:"media_id"`
	UserID    string     `json:"user_id"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
	User      PublicUser `json:"user"`
}
