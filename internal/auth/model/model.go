package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is a closed set so a typo in a route definition fails to compile
// instead of silently never matching.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email" gorm:"uniqueIndex"`
	Name          string    `json:"name"`
	PasswordHash  string    `json:"-"`
	Role          Role      `json:"role"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type TokenPair struct {
	AccessToken     string
	RefreshToken    string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	UserID          uuid.UUID
	RefreshTokenJTI string
}

// Principal is the identity attached to a request after the access
// token has been verified.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}
