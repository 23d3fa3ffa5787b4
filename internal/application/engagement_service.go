package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/partymoa/partymoa-server/internal/domain/entity"
	"github.com/partymoa/partymoa-server/internal/domain/repository"
	"github.com/partymoa/partymoa-server/pkg/apperr"
	"github.com/partymoa/partymoa-server/pkg/helpers"
)

// EngagementService owns the bookmark toggle and listing logic.
type EngagementService struct {
	Users    repository.UserRepository
	Posts    repository.PostRepository
	Redis    *redis.Client
	Logger   *logrus.Logger
	CacheTTL time.Duration
}

func NewEngagementService(users repository.UserRepository, posts repository.PostRepository, rdb *redis.Client, logger *logrus.Logger, cacheTTL time.Duration) *EngagementService {
	return &EngagementService{Users: users, Posts: posts, Redis: rdb, Logger: logger, CacheTTL: cacheTTL}
}

func bookmarkCacheKey(nickname string) string {
	return "bookmarks:" + nickname
}

// ToggleResult reports what a toggle did so callers can relay the action.
type ToggleResult struct {
	Added     bool     `json:"added"`
	Bookmarks []string `json:"bookmarks"`
}

// ToggleBookmark flips postID membership in the user's bookmark set. The
// read-modify-write is a single atomic storage statement, so concurrent
// toggles on the same user serialize there instead of losing updates.
func (s *EngagementService) ToggleBookmark(ctx context.Context, nickname, postID string) (ToggleResult, error) {
	added, bookmarks, err := s.Users.ToggleBookmark(ctx, nickname, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ToggleResult{}, apperr.NotFound("no such account")
		}
		return ToggleResult{}, apperr.Internal(err)
	}
	if s.Redis != nil {
		if err := helpers.RedisDel(ctx, s.Redis, bookmarkCacheKey(nickname)); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("nickname", nickname).Warn("bookmark cache invalidation failed")
		}
	}
	return ToggleResult{Added: added, Bookmarks: bookmarks}, nil
}

// ListBookmarks resolves the user's bookmarked post ids to live summaries.
// No resolvable posts is a successful empty result, not an error.
func (s *EngagementService) ListBookmarks(ctx context.Context, nickname string) ([]entity.BookmarkSummary, error) {
	if s.Redis != nil && s.CacheTTL > 0 {
		var cached []entity.BookmarkSummary
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, bookmarkCacheKey(nickname), &cached); err == nil && ok {
			return cached, nil
		}
	}

	u, err := s.Users.GetByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("no such account")
		}
		return nil, apperr.Internal(err)
	}
	summaries, err := s.Posts.FindSummariesByIDs(ctx, u.Bookmarks)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if s.Redis != nil && s.CacheTTL > 0 {
		if err := helpers.RedisSetJSON(ctx, s.Redis, bookmarkCacheKey(nickname), summaries, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("nickname", nickname).Warn("bookmark cache write failed")
		}
	}
	return summaries, nil
}
