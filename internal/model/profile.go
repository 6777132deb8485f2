package model

type UserRole string

const (
	RoleClient     UserRole = "client"
	RoleSpecialist UserRole = "specialist"
	RoleVenue      UserRole = "venue"
	RoleAdmin      UserRole = "admin"
)

// IsProvider reports whether the role can own bookings and manual blocks.
func (r UserRole) IsProvider() bool {
	return r == RoleSpecialist || r == RoleVenue
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleClient, RoleSpecialist, RoleVenue, RoleAdmin:
		return true
	}
	return false
}

// Profile is the account row shared by every role.
type Profile struct {
	Base
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     *string   `json:"full_name" db:"full_name"`
	AvatarURL    *string   `json:"avatar_url" db:"avatar_url"`
	Role         *UserRole `json:"role" db:"role"`
	City         *string   `json:"city" db:"city"`
	Phone        *string   `json:"phone" db:"phone"`
	PushToken    *string   `json:"push_token,omitempty" db:"push_token"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	IsBanned     bool      `json:"is_banned" db:"is_banned"`
}

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name" binding:"omitempty,max=120"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
	City      *string `json:"city" binding:"omitempty,max=80"`
	Phone     *string `json:"phone" binding:"omitempty,max=32"`
}

type RegisterPushTokenRequest struct {
	PushToken string `json:"push_token" binding:"required"`
}

// ProfileFilters narrows the admin user listing.
type ProfileFilters struct {
	Role   *UserRole
	Banned *bool
	Search string
	Pagination
}
