package identity

import (
	"strings"
	"time"

	"github.com/gympos/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents what a user may do at the register
type Role string

const (
	// RoleOperator staffs a station and owns a cash drawer
	RoleOperator Role = "operator"
	// RoleSupervisor can additionally authorize out-of-window closures
	RoleSupervisor Role = "supervisor"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	return r == RoleOperator || r == RoleSupervisor
}

// Password cost for bcrypt
const bcryptCost = 12

// User represents a register operator or supervisor
type User struct {
	shared.BaseAggregateRoot
	Username     string
	PasswordHash string
	DisplayName  string
	Role         Role
	Active       bool
	LastLoginAt  *time.Time
}

// NewUser creates an active user with a hashed password
func NewUser(username, password, displayName string, role Role) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		PasswordHash:      string(hash),
		DisplayName:       displayName,
		Role:              role,
		Active:            true,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CanAuthorizeOverride reports whether the user may sign off an
// out-of-window shift closure
func (u *User) CanAuthorizeOverride() bool {
	return u.Active && u.Role == RoleSupervisor
}

// RecordLogin stamps the last successful login
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = at
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now()
}
