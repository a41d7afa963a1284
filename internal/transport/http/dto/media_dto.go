package dto

import "time"

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UpdateRequestResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	CategoryID  *string   `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type MediaDetailResponse struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Tags          []string               `json:"tags"`
	Status        string                 `json:"status"`
	MediaURL      string                 `json:"media_url"`
	CreatedAt     time.Time              `json:"created_at"`
	Author        PublicUserResponse     `json:"author"`
	Category      *CategoryResponse      `json:"category"`
	UpdateRequest *UpdateRequestResponse `json:"update_request,omitempty"`
}

type MediaListResponse struct {
	Items      []MediaDetailResponse `json:"items"`
	NextCursor string                `json:"next_cursor,omitempty"`
}

type BackupItemResponse struct {
	ID       string `json:"id"`
	MediaURL string `json:"media_url"`
}

type BackupResponse struct {
	Items      []BackupItemResponse `json:"items"`
	NextCursor string               `json:"next_cursor,omitempty"`
}
