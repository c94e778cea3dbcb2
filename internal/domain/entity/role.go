package entity

// Role is the capability class of an identity.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// Authorize is the single access policy: a user may invoke an operation when
// their role is one of the required roles. An empty requirement only demands
// an authenticated user.
func Authorize(user *User, required ...Role) bool {
	if user == nil || !user.Role.IsValid() {
		return false
	}
	if len(required) == 0 {
		return true
	}
	for _, role := range required {
		if user.Role == role {
			return true
		}
	}
	return false
}
