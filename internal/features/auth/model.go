package auth

import (
	"time"

	"github.com/xyz-asif/nagaralert/internal/features/users"
)

// Identity is what the auth provider vouches for
type Identity struct {
	UID   string
	Email string
	Phone string
}

// SessionRequest exchanges a Firebase ID token for a session token
type SessionRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// RegisterRequest completes sign-up after the client authenticated with Firebase
type RegisterRequest struct {
	IDToken    string `json:"idToken" binding:"required"`
	Role       string `json:"role" binding:"required" example:"citizen"`
	FirstName  string `json:"firstName" binding:"required" example:"Rahul"`
	LastName   string `json:"lastName" example:"Kumar"`
	Mobile     string `json:"mobile" example:"+919876543210"`
	Email      string `json:"email" binding:"required" example:"rahul@example.com"`
	Address    string `json:"address,omitempty" example:"Sector 4, Ranchi"`
	Department string `json:"department,omitempty" example:"Roads"`
	OfficialID string `json:"officialId,omitempty" example:"RNC-0042"`
	SecretCode string `json:"secretCode,omitempty"`
}

// SessionResponse carries the session token and the profile it was issued for
type SessionResponse struct {
	AccessToken string      `json:"accessToken"`
	ExpiresAt   time.Time   `json:"expiresAt"`
	User        *users.User `json:"user"`
}
