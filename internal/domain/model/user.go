package model

import (
	"time"

	"github.com/wdhive/photo-gallery/internal/domain/enums"
)

type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      enums.Role `json:"role"`
	AvatarSm  *string    `json:"avatar_sm"`
	AvatarMd  *string    `json:"avatar_md"`
	AvatarLg  *string    `json:"avatar_lg"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PublicUser is the projection of a User safe to attach to publicly
// visible records.
type PublicUser struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Role     enums.Role `json:"role"`
	AvatarSm *string    `json:"avatar_sm"`
	AvatarMd *string    `json:"avatar_md"`
	AvatarLg *string    `json:"avatar_lg"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Name:     u.Name,
		Role:     u.Role,
		AvatarSm: u.AvatarSm,
		AvatarMd: u.AvatarMd,
		AvatarLg: u.AvatarLg,
	}
}
