package domain

import "time"

type UserRole string

const (
	UserRoleCustomer UserRole = "CUSTOMER"
	UserRoleStylist  UserRole = "STYLIST"
	UserRoleOwner    UserRole = "OWNER"
)

type User struct {
	ID           int32      `json:"id"`
	Role         UserRole   `json:"role"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	PhoneNumber  string     `json:"phone_number,omitempty"`
	AvatarURL    string     `json:"avatar_url,omitempty"`
	Metro        string     `json:"metro,omitempty"`
	CreatedOn    time.Time  `json:"created_on"`
	UpdatedOn    time.Time  `json:"updated_on"`
	DeletedOn    *time.Time `json:"deleted_on,omitempty"`
}
