package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/partymoa/partymoa-server/internal/domain/repository"
	"github.com/partymoa/partymoa-server/pkg/apperr"
	"github.com/partymoa/partymoa-server/pkg/helpers"
)

// SessionService issues and rotates session tokens. Access tokens are
// stateless; the refresh token is the only persisted session artifact, a
// single slot per user, so rotating it invalidates every prior session.
type SessionService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewSessionService(repo repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *SessionService {
	return &SessionService{Repo: repo, JWT: jwt, Logger: logger}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// IssueTokens generates an access/refresh pair and persists the refresh token,
// overwriting whatever was stored before.
func (s *SessionService) IssueTokens(ctx context.Context, userID string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(userID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Error("generate access token failed")
		}
		return TokenPair{}, apperr.Internal(err)
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken()
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Error("generate refresh token failed")
		}
		return TokenPair{}, apperr.Internal(err)
	}
	if err := s.Repo.UpdateRefreshToken(ctx, userID, refresh); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, apperr.Unauthorized("no such account")
		}
		return TokenPair{}, apperr.Internal(err)
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh validates a refresh token and rotates the pair. Validity requires
// both a good signature within expiry and an exact match against the token
// stored on some user record.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	if err := s.JWT.VerifyRefreshToken(refreshToken); err != nil {
		return TokenPair{}, "", apperr.Unauthorized("invalid refresh token")
	}
	u, err := s.Repo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, "", apperr.Unauthorized("invalid refresh token")
		}
		return TokenPair{}, "", apperr.Internal(err)
	}
	pair, err := s.IssueTokens(ctx, u.UserID)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.UserID, nil
}

// Logout blanks the stored refresh token, invalidating outstanding sessions.
func (s *SessionService) Logout(ctx context.Context, userID string) error {
	if err := s.Repo.UpdateRefreshToken(ctx, userID, ""); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("no such account")
		}
		return apperr.Internal(err)
	}
	return nil
}
