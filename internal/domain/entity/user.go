package entity

import (
	"time"
)

// DefaultPoints is the balance granted to every new account, spendable and
// lifetime-earned both start here.
const DefaultPoints = 3000

// DefaultAvatar returns the all-ones attribute selection new accounts get.
func DefaultAvatar() map[string]int {
	return map[string]int{"Eye": 1, "Hair": 1, "Mouth": 1, "Back": 1}
}

// User is the aggregate root for the account domain.
// PasswordHash is a bcrypt hash, never the original password. RefreshToken is
// the single valid refresh token slot; overwriting it invalidates all prior
// sessions. Points is the spendable balance and never exceeds TotalPoints,
// which only grows.
type User struct {
	ID           string
	UserID       string
	Nickname     string
	PasswordHash string
	RefreshToken string
	Points       int
	TotalPoints  int
	Avatar       map[string]int
	Bookmarks    []string
	MyPlace      []string
	Age          string
	Gender       string
	LikedGames   []string
	Visibility   string
	TutorialSeen bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Scrub blanks credentials before the record leaves the core.
func (u *User) Scrub() *User {
	cp := *u
	cp.PasswordHash = ""
	cp.RefreshToken = ""
	return &cp
}
