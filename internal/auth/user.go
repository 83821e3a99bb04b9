package auth

import "time"

type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleTrainer Role = "trainer"
)

type Membership string

const (
	MembershipBasic   Membership = "basic"
	MembershipPremium Membership = "premium"
	MembershipPro     Membership = "pro"
)

type User struct {
	ID               string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	PasswordHash     string
	Role             Role
	Membership       Membership
	TwoFactorEnabled bool
	// Set if and only if TwoFactorEnabled is true.
	TwoFactorSecret *string
	// Digest of the outstanding reset token; both fields present or both nil.
	ResetPasswordToken   *string
	ResetPasswordExpires *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
