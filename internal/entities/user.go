package entities

import "time"

// Role governs request visibility and assignment eligibility.
type Role string

const (
	RoleUser       Role = "user"
	RoleTechnician Role = "technician"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleTechnician, RoleAdmin:
		return true
	}
	return false
}

// CanBeAssigned reports whether a user with this role may be set as the
// assigned technician of a repair request.
func (r Role) CanBeAssigned() bool {
	return r == RoleTechnician || r == RoleAdmin
}

type User struct {
	ID           uint64    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}

// UserProfile carries the extra attributes created alongside registration.
// One profile per user; its role is the sole input to access scoping.
type UserProfile struct {
	ID         uint64    `db:"id"`
	UserID     uint64    `db:"user_id"`
	Role       Role      `db:"role"`
	Department string    `db:"department"`
	Phone      string    `db:"phone"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
