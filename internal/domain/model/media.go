package model

import (
	"time"

	"github.com/wdhive/photo-gallery/internal/domain/enums"
)

type Media struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Tags        []string            `json:"tags"`
	CategoryID  *string             `json:"category_id"`
	AuthorID    string              `json:"author_id"`
	Status      enums.ContentStatus `json:"status"`
	MediaURL    string              `json:"media_url"`
	CreatedAt   time.Time           `json:"created_at"`
}

// MediaDetail is a Media row with its relations expanded the way read
// paths return it.
type MediaDetail struct {
	Media
	Author        PublicUser     `json:"author"`
	Category      *Category      `json:"category"`
	UpdateRequest *UpdateRequest `json:"update_request,omitempty"`
}

// UpdateRequest is a pending edit to an already submitted media item,
// awaiting moderator review.
type UpdateRequest struct {
	ID          string    `json:"id"`
	MediaID     string    `json:"media_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	CategoryID  *string   `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
}
