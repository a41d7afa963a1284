package dto

import "time"

type PublicUserResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	AvatarSm *string `json:"avatar_sm"`
	AvatarMd *string `json:"avatar_md"`
	AvatarLg *string `json:"avatar_lg"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	AvatarSm  *string   `json:"avatar_sm"`
	AvatarMd  *string   `json:"avatar_md"`
	AvatarLg  *string   `json:"avatar_lg"`
	CreatedAt time.Time `json:"created_at"`
}

type AvatarUpdateRequest struct {
	Sm *string `json:"sm"`
	Md *string `json:"md"`
	Lg *string `json:"lg"`
}
