package domain

const (
	RoleStudent = "STUDENT"
	RoleStaff   = "STAFF"
)

// User is created outside this service (mock auth) and never mutated by it.
type User struct {
	UserID    string `json:"id" dynamodbav:"user_id"`
	Name      string `json:"name" dynamodbav:"name"`
	Email     string `json:"email" dynamodbav:"email"`
	Role      string `json:"role" dynamodbav:"role"`
	AvatarURL string `json:"avatar_url,omitempty" dynamodbav:"avatar_url"`
}

// IsStaff reports whether the user may moderate items and claims.
func (u *User) IsStaff() bool { return u.Role == RoleStaff }

type LoginRequest struct {
	Role string `json:"role" validate:"required,oneof=STUDENT STAFF"`
}
