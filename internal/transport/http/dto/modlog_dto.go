package dto

import "time"

type MessageResponse struct {
	ID        string             `json:"id"`
	MediaID   string             `json:"media_id"`
	Message   string             `json:"message"`
	CreatedAt time.Time          `json:"created_at"`
	User      PublicUserResponse `json:"user"`
}

type MessagesListResponse struct {
	Items []MessageResponse `json:"items"`
	// RetryAfterSec is the remaining posting cooldown for the caller.
	RetryAfterSec int64 `json:"retry_after_sec,omitempty"`
}

type CreateMessageRequest struct {
	Message string `json:"message"`
}

type RejectRequest struct {
	Note string `json:"note"`
}

type StatusChangeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
