package user

// Role is a studio console permission level. Staff work the booking list;
// admins also cancel bookings and edit studio settings.
type Role string

const (
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

var roleRank = map[Role]int{
	RoleStaff: 1,
	RoleAdmin: 2,
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants everything min does. Unknown roles
// grant nothing.
func (r Role) AtLeast(min Role) bool {
	have, ok := roleRank[r]
	need, known := roleRank[min]
	return ok && known && have >= need
}
