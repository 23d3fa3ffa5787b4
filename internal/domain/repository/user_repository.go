package repository

import (
	"context"
	"errors"

	"github.com/partymoa/partymoa-server/internal/domain/entity"
)

// ProfilePatch carries the mutable profile attributes for an update. Nil
// pointers (and nil slices) mean "leave the stored value unchanged"; the
// transport layer is responsible for mapping its wire sentinel onto absence.
type ProfilePatch struct {
	Nickname     *string
	MyPlace      []string
	Age          *string
	Gender       *string
	LikedGames   []string
	Visibility   *string
	TutorialSeen *bool
}

// UserRepository is the storage collaborator for user records. Uniqueness of
// UserID and Nickname is enforced by the store itself, not only by application
// pre-checks; Create must fail with a duplicate error when either collides.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByUserID(ctx context.Context, userID string) (*entity.User, error)
	GetByNickname(ctx context.Context, nickname string) (*entity.User, error)
	GetByRefreshToken(ctx context.Context, token string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*entity.User, error)
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
	UpdateRefreshToken(ctx context.Context, userID, token string) error
	// ToggleBookmark atomically adds or removes postID from the user's
	// bookmark set and reports whether the post ended up bookmarked.
	ToggleBookmark(ctx context.Context, nickname, postID string) (added bool, bookmarks []string, err error)
	// DeductPoints atomically subtracts cost from the spendable balance and
	// applies the avatar selection, failing without any write when the
	// balance is insufficient. TotalPoints is never touched.
	DeductPoints(ctx context.Context, userID string, cost int, avatar map[string]int) (*entity.User, error)
	DeleteByNickname(ctx context.Context, nickname string) error
}

// Storage-level failure signals the application layer translates into its own
// error kinds.
var (
	ErrDuplicate    = errors.New("duplicate key")
	ErrNotFound     = errors.New("not found")
	ErrInsufficient = errors.New("insufficient balance")
)
