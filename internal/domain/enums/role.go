package enums

type Role string

const (
	RoleUser      Role = "USER"
	RoleVerified  Role = "VERIFIED"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
	RoleOwner     Role = "OWNER"
)

// roleLevels defines the trust ordering. Unknown roles map to -1 so they
// never clear a threshold check.
var roleLevels = map[Role]int{
	RoleUser:      0,
	RoleVerified:  1,
	RoleModerator: 2,
	RoleAdmin:     3,
	RoleOwner:     4,
}

func (r Role) Level() int {
	level, ok := roleLevels[r]
	if !ok {
		return -1
	}
	return level
}

func (r Role) AtLeast(other Role) bool {
	return r.Level() >= other.Level()
}

func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}
