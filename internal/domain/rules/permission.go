package rules

import (
	"github.com/wdhive/photo-gallery/internal/domain/enums"
	"github.com/wdhive/photo-gallery/internal/domain/model"
)

// ModeratorThreshold is the role level at or above which a user counts as
// moderator for every permission check in the system.
const ModeratorThreshold = enums.RoleModerator

// MediaCapability answers what an actor may do with one media snapshot.
// All checks are pure functions over the snapshot, no I/O.
type MediaCapability struct {
	media model.Media
}

func MediaPermission(media model.Media) MediaCapability {
	return MediaCapability{media: media}
}

// View reports whether the actor may read the media. Anyone may read
// approved media; otherwise only the author and moderator-level users.
// A nil actor is an anonymous request.
func (c MediaCapability) View(actor *model.User) bool {
	if c.media.Status == enums.ContentStatusApproved {
		return true
	}
	if actor == nil {
		return false
	}
	if actor.ID == c.media.AuthorID {
		return true
	}
	return UserPermission(*actor).IsModeratorLevel()
}

type UserCapability struct {
	user model.User
}

func UserPermission(user model.User) UserCapability {
	return UserCapability{user: user}
}

func (c UserCapability) IsModeratorLevel() bool {
	return c.user.Role.AtLeast(ModeratorThreshold)
}
