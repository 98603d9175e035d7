package users

import "time"

// Roles
const (
	RoleCitizen = "citizen"
	RoleAdmin   = "admin"
)

// User is a citizen or an official. Role is fixed at registration.
type User struct {
	UID        string    `json:"uid" bson:"_id"`
	FirstName  string    `json:"firstName" bson:"firstName"`
	LastName   string    `json:"lastName" bson:"lastName"`
	Mobile     string    `json:"mobile,omitempty" bson:"mobile,omitempty"`
	Email      string    `json:"email" bson:"email"`
	Role       string    `json:"role" bson:"role"`
	Address    string    `json:"address,omitempty" bson:"address,omitempty"`
	Department string    `json:"department,omitempty" bson:"department,omitempty"`
	OfficialID string    `json:"officialId,omitempty" bson:"officialId,omitempty"`
	Points     int       `json:"points" bson:"points"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

// FullName joins first and last name
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UpdateProfileRequest is a partial profile edit. Role and points are never writable.
type UpdateProfileRequest struct {
	FirstName  *string `json:"firstName,omitempty" example:"Anjali"`
	LastName   *string `json:"lastName,omitempty" example:"Sharma"`
	Mobile     *string `json:"mobile,omitempty" example:"+919876543210"`
	Address    *string `json:"address,omitempty" example:"Sector 4, Ranchi"`
	Department *string `json:"department,omitempty" example:"Roads"`
}

// Badge shown next to a leaderboard rank
type Badge string

const (
	BadgeGold   Badge = "gold"
	BadgeSilver Badge = "silver"
	BadgeBronze Badge = "bronze"
	BadgeShield Badge = "shield"
)

// LeaderboardEntry is one ranked citizen
type LeaderboardEntry struct {
	Rank   int    `json:"rank" example:"1"`
	UID    string `json:"uid"`
	Name   string `json:"name" example:"Anjali Sharma"`
	Points int    `json:"points" example:"1250"`
	Badge  Badge  `json:"badge" example:"gold"`
	IsMe   bool   `json:"isMe"`
}
