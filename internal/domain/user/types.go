package user

// Role decides what a signed-in caller may see and change. Members book
// rooms for themselves; admins also manage rooms and see closed ones.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// rank orders roles; unknown roles rank zero and satisfy nothing.
func (r Role) rank() int {
	switch r {
	case RoleMember:
		return 1
	case RoleAdmin:
		return 2
	default:
		return 0
	}
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return r.rank() > 0
}

// AtLeast reports whether r grants everything min grants.
func (r Role) AtLeast(min Role) bool {
	return r.IsValid() && min.IsValid() && r.rank() >= min.rank()
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
