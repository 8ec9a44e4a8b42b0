package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Role is a capability tag granted to a user.
type Role = string

// Roles.
const (
	RoleAdmin     Role = "admin"
	RoleSuperUser Role = "superUser"
	RoleUser      Role = "user"
)

// ValidRoles lists every role a user may hold.
var ValidRoles = []Role{RoleAdmin, RoleSuperUser, RoleUser}

// IsValidRole reports whether role is one of ValidRoles.
func IsValidRole(role string) bool {
	return slices.Contains(ValidRoles, role)
}

// Roles is the set of roles held by a user, stored as a JSON array.
type Roles []Role

// Has reports whether the set contains role.
func (r Roles) Has(role Role) bool {
	return slices.Contains(r, role)
}

// Intersects reports whether any role in r is also in other.
func (r Roles) Intersects(other []Role) bool {
	for _, role := range r {
		if slices.Contains(other, role) {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer.
func (r Roles) Value() (driver.Value, error) {
	if r == nil {
		r = Roles{}
	}
	b, err := json.Marshal([]Role(r))
	if err != nil {
		return nil, fmt.Errorf("encoding roles: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (r *Roles) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*r = nil
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("scanning roles: unsupported type %T", src)
	}
	var roles []Role
	if err := json.Unmarshal(data, &roles); err != nil {
		return fmt.Errorf("decoding roles: %w", err)
	}
	*r = roles
	return nil
}

// User represents an account. The password hash is only loaded by the
// credential lookup and never serialized.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           uuid.UUID  `bun:"id,pk" json:"id"`
	FullName     string     `bun:"full_name,notnull" json:"full_name"`
	Email        string     `bun:"email,notnull" json:"email"`
	PasswordHash string     `bun:"password_hash" json:"-"`
	Roles        Roles      `bun:"roles,notnull" json:"roles"`
	IsActive     bool       `bun:"is_active,notnull" json:"is_active"`
	LastUpdateBy *uuid.UUID `bun:"last_update_by" json:"last_update_by,omitempty"`
	CreatedAt    time.Time  `bun:"created_at,notnull" json:"created_at"`
}

// SignUpInput is the payload for creating an account.
type SignUpInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput is the payload for signing in.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserInput is a partial update applied by an admin.
type UpdateUserInput struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Roles    []Role  `json:"roles"`
	IsActive *bool   `json:"is_active"`
}

// AuthResponse pairs a session token with the authenticated user.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UserOverview is a user together with the admin who last changed it and
// the size of its collections.
type UserOverview struct {
	*User
	UpdatedBy *User `json:"updated_by,omitempty"`
	ItemCount int   `json:"item_count"`
	ListCount int   `json:"list_count"`
}
