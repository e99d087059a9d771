package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin          UserRole = "admin"
	UserRoleBuilder        UserRole = "builder"
	UserRoleChannelPartner UserRole = "channel_partner"
	UserRoleCustomer       UserRole = "customer"
)

// Valid reports whether the role is one of the known roles
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleBuilder, UserRoleChannelPartner, UserRoleCustomer:
		return true
	}
	return false
}

// User represents a user entity
type User struct {
	ID            uuid.UUID   `json:"id"`
	Email         string      `json:"email"`
	PasswordHash  string      `json:"-"`
	FullName      string      `json:"fullName"`
	Phone         null.String `json:"phone,omitempty"`
	Role          UserRole    `json:"role"`
	ReferralCode  null.String `json:"referralCode,omitempty"`
	IsActive      bool        `json:"isActive"`
	EmailVerified bool        `json:"emailVerified"`
	LastLoginAt   null.Time   `json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// UserProfile is the public projection returned by the API
type UserProfile struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	Phone         string    `json:"phone,omitempty"`
	Role          UserRole  `json:"role"`
	EmailVerified bool      `json:"emailVerified"`
	ReferralCode  string    `json:"referralCode,omitempty"`
}

// Profile returns the public projection of a user
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		Phone:         u.Phone.String,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		ReferralCode:  u.ReferralCode.String,
	}
}

// SignupInput represents input for creating an account
type SignupInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName" binding:"required,min=2,max=100"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"omitempty,oneof=admin builder channel_partner customer"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents an authentication result
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"-"`
	User         *User  `json:"user"`
}

// ChangePasswordInput represents input for changing the account password
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// UpdateProfileInput represents a partial profile update
type UpdateProfileInput struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	FullName *string `json:"fullName" binding:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone"`
}
