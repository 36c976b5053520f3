package models

import "time"

type UserRole string

const (
	RoleMaster UserRole = "master"
	RoleAdmin  UserRole = "admin"
	RolePlayer UserRole = "player"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleMaster, RoleAdmin, RolePlayer:
		return true
	}
	return false
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationPending, VerificationApproved, VerificationRejected:
		return true
	}
	return false
}

type User struct {
	ID                 int                `json:"id" db:"id"`
	Email              string             `json:"email" db:"email"`
	FullName           string             `json:"full_name" db:"full_name"`
	Role               UserRole           `json:"role" db:"role"`
	VerificationStatus VerificationStatus `json:"verification_status" db:"verification_status"`
	PasswordHash       string             `json:"-" db:"password_hash"`
	AvatarKey          *string            `json:"-" db:"avatar_key"`
	AvatarURL          *string            `json:"avatar_url,omitempty" db:"-"`
	CreatedAt          time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" db:"updated_at"`
}

// CanMutate reports whether the user may perform privileged mutations.
// Masters always can; admins only once their account has been approved.
func (u *User) CanMutate() bool {
	switch u.Role {
	case RoleMaster:
		return true
	case RoleAdmin:
		return u.VerificationStatus == VerificationApproved
	}
	return false
}
