package application

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/partymoa/partymoa-server/internal/domain/entity"
	"github.com/partymoa/partymoa-server/internal/domain/repository"
	"github.com/partymoa/partymoa-server/pkg/apperr"
	"github.com/partymoa/partymoa-server/pkg/helpers"
)

var (
	reUserID   = regexp.MustCompile(`^[A-Za-z0-9]{4,20}$`)
	rePassword = regexp.MustCompile(`^[A-Za-z0-9]{4,30}$`)
)

// AccountService orchestrates the account lifecycle: signup, login, profile
// updates, password changes and deletion. It owns validation ordering and
// delegates credential storage and hashing to its collaborators.
type AccountService struct {
	Repo   repository.UserRepository
	Hasher *helpers.Hasher
	Logger *logrus.Logger
	Events *helpers.RabbitPublisher
}

func NewAccountService(repo repository.UserRepository, hasher *helpers.Hasher, logger *logrus.Logger, events *helpers.RabbitPublisher) *AccountService {
	return &AccountService{Repo: repo, Hasher: hasher, Logger: logger, Events: events}
}

// AccountEvent is the queue payload published on lifecycle transitions.
type AccountEvent struct {
	Type       string    `json:"type"` // signed_up, deleted
	UserID     string    `json:"userId"`
	Nickname   string    `json:"nickname"`
	OccurredAt time.Time `json:"occurredAt"`
}

type SignUpInput struct {
	UserID          string
	Nickname        string
	Password        string
	ConfirmPassword string
	MyPlace         []string
	Age             string
	Gender          string
	LikedGames      []string
}

// SignUp validates and creates a new account. Error ordering is deliberate
// and observable: uniqueness before format before confirmation match. The
// uniqueness pre-checks are a fast path only; the unique constraints in
// storage are authoritative, so a race loser still gets a conflict.
func (s *AccountService) SignUp(ctx context.Context, in SignUpInput) (*entity.User, error) {
	if _, err := s.Repo.GetByUserID(ctx, in.UserID); err == nil {
		return nil, apperr.Conflict("this user id is already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal(err)
	}
	if _, err := s.Repo.GetByNickname(ctx, in.Nickname); err == nil {
		return nil, apperr.Conflict("this nickname is already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal(err)
	}
	if !reUserID.MatchString(in.UserID) {
		return nil, apperr.InvalidInput("user id must be 4-20 alphanumeric characters")
	}
	if !rePassword.MatchString(in.Password) {
		return nil, apperr.InvalidInput("password must be 4-30 alphanumeric characters")
	}
	if in.Password != in.ConfirmPassword {
		return nil, apperr.InvalidInput("password and confirmation do not match")
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	u := &entity.User{
		UserID:       in.UserID,
		Nickname:     in.Nickname,
		PasswordHash: hash,
		Points:       entity.DefaultPoints,
		TotalPoints:  entity.DefaultPoints,
		Avatar:       entity.DefaultAvatar(),
		Bookmarks:    []string{},
		MyPlace:      in.MyPlace,
		Age:          in.Age,
		Gender:       in.Gender,
		LikedGames:   in.LikedGames,
	}
	if u.MyPlace == nil {
		u.MyPlace = []string{}
	}
	if u.LikedGames == nil {
		u.LikedGames = []string{}
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost the check-then-act race; the constraint closed it.
			return nil, apperr.Conflict("this user id or nickname is already registered")
		}
		return nil, apperr.Internal(err)
	}

	s.publish(ctx, AccountEvent{Type: "signed_up", UserID: u.UserID, Nickname: u.Nickname, OccurredAt: time.Now().UTC()})
	return u.Scrub(), nil
}

// CheckIDAvailable reports whether a user id is free. No side effects.
func (s *AccountService) CheckIDAvailable(ctx context.Context, userID string) error {
	_, err := s.Repo.GetByUserID(ctx, userID)
	if err == nil {
		return apperr.Conflict("this user id is already registered")
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return apperr.Internal(err)
}

// CheckNicknameAvailable reports whether a nickname is free. No side effects.
func (s *AccountService) CheckNicknameAvailable(ctx context.Context, nickname string) error {
	_, err := s.Repo.GetByNickname(ctx, nickname)
	if err == nil {
		return apperr.Conflict("this nickname is already registered")
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return apperr.Internal(err)
}

// Login verifies credentials and returns the account record with credentials
// scrubbed. Session issuance is the caller's responsibility.
func (s *AccountService) Login(ctx context.Context, userID, password string) (*entity.User, error) {
	u, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Unauthorized("check your user id")
		}
		return nil, apperr.Internal(err)
	}
	if !s.Hasher.Verify(password, u.PasswordHash) {
		return nil, apperr.Unauthorized("check your password")
	}
	return u.Scrub(), nil
}

func (s *AccountService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("no such account")
		}
		return nil, apperr.Internal(err)
	}
	return u.Scrub(), nil
}

// GetPublicProfile exposes another user's profile looked up by nickname.
func (s *AccountService) GetPublicProfile(ctx context.Context, nickname string) (*entity.User, error) {
	u, err := s.Repo.GetByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("no such account")
		}
		return nil, apperr.Internal(err)
	}
	return u.Scrub(), nil
}

// UpdateProfile applies a partial profile update. Absent fields keep their
// stored values; substitution happens inside a single storage statement.
// Nickname changes are not re-checked for uniqueness here beyond the storage
// constraint itself.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, patch repository.ProfilePatch) (*entity.User, error) {
	u, err := s.Repo.UpdateProfile(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("no such account")
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("this nickname is already registered")
		}
		return nil, apperr.Internal(err)
	}
	return u.Scrub(), nil
}

// ChangePassword re-hashes unconditionally; the caller must have already
// authenticated.
func (s *AccountService) ChangePassword(ctx context.Context, userID, newPassword string) error {
	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := s.Repo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("no such account")
		}
		return apperr.Internal(err)
	}
	return nil
}

// DeleteAccount removes the user record. Cleanup of post-side references is
// the post domain's concern.
func (s *AccountService) DeleteAccount(ctx context.Context, nickname string) error {
	if err := s.Repo.DeleteByNickname(ctx, nickname); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("no such account")
		}
		return apperr.Internal(err)
	}
	s.publish(ctx, AccountEvent{Type: "deleted", Nickname: nickname, OccurredAt: time.Now().UTC()})
	return nil
}

// publish emits a lifecycle event; failures are logged and never surface to
// the caller.
func (s *AccountService) publish(ctx context.Context, ev AccountEvent) {
	if s.Events == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.Events.PublishJSON(pubCtx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("event", ev.Type).Warn("account event publish failed")
	}
}
