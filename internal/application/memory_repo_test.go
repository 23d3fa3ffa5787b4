package application

import (
	"context"
	"sync"

	"github.com/partymoa/partymoa-server/internal/domain/entity"
	"github.com/partymoa/partymoa-server/internal/domain/repository"
)

// memUserRepo is an in-memory UserRepository with the same atomicity
// guarantees the storage layer provides: uniqueness enforced on write, and
// toggle/deduct as single serialized operations.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User // keyed by UserID
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	cp.Avatar = map[string]int{}
	for k, v := range u.Avatar {
		cp.Avatar[k] = v
	}
	cp.Bookmarks = append([]string{}, u.Bookmarks...)
	cp.MyPlace = append([]string{}, u.MyPlace...)
	cp.LikedGames = append([]string{}, u.LikedGames...)
	return &cp
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.UserID == u.UserID || existing.Nickname == u.Nickname {
			return repository.ErrDuplicate
		}
	}
	if u.Avatar == nil {
		u.Avatar = entity.DefaultAvatar()
	}
	r.users[u.UserID] = cloneUser(u)
	return nil
}

func (r *memUserRepo) GetByUserID(_ context.Context, userID string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		return cloneUser(u), nil
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByNickname(_ context.Context, nickname string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Nickname == nickname {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByRefreshToken(_ context.Context, token string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token == "" {
		return nil, repository.ErrNotFound
	}
	for _, u := range r.users {
		if u.RefreshToken == token {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) UpdateProfile(_ context.Context, userID string, patch repository.ProfilePatch) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Nickname != nil {
		for _, other := range r.users {
			if other.UserID != userID && other.Nickname == *patch.Nickname {
				return nil, repository.ErrDuplicate
			}
		}
		u.Nickname = *patch.Nickname
	}
	if patch.MyPlace != nil {
		u.MyPlace = append([]string{}, patch.MyPlace...)
	}
	if patch.Age != nil {
		u.Age = *patch.Age
	}
	if patch.Gender != nil {
		u.Gender = *patch.Gender
	}
	if patch.LikedGames != nil {
		u.LikedGames = append([]string{}, patch.LikedGames...)
	}
	if patch.Visibility != nil {
		u.Visibility = *patch.Visibility
	}
	if patch.TutorialSeen != nil {
		u.TutorialSeen = *patch.TutorialSeen
	}
	return cloneUser(u), nil
}

func (r *memUserRepo) UpdatePasswordHash(_ context.Context, userID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *memUserRepo) UpdateRefreshToken(_ context.Context, userID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.RefreshToken = token
	return nil
}

func (r *memUserRepo) ToggleBookmark(_ context.Context, nickname, postID string) (bool, []string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Nickname != nickname {
			continue
		}
		for i, id := range u.Bookmarks {
			if id == postID {
				u.Bookmarks = append(u.Bookmarks[:i], u.Bookmarks[i+1:]...)
				return false, append([]string{}, u.Bookmarks...), nil
			}
		}
		u.Bookmarks = append(u.Bookmarks, postID)
		return true, append([]string{}, u.Bookmarks...), nil
	}
	return false, nil, repository.ErrNotFound
}

func (r *memUserRepo) DeductPoints(_ context.Context, userID string, cost int, avatar map[string]int) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if u.Points < cost {
		return nil, repository.ErrInsufficient
	}
	u.Points -= cost
	for k, v := range avatar {
		u.Avatar[k] = v
	}
	return cloneUser(u), nil
}

func (r *memUserRepo) DeleteByNickname(_ context.Context, nickname string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if u.Nickname == nickname {
			delete(r.users, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

var _ repository.UserRepository = (*memUserRepo)(nil)

// memPostRepo serves fixed post summaries.
type memPostRepo struct {
	posts map[string]entity.BookmarkSummary
}

func newMemPostRepo(posts ...entity.BookmarkSummary) *memPostRepo {
	m := map[string]entity.BookmarkSummary{}
	for _, p := range posts {
		m[p.PostID] = p
	}
	return &memPostRepo{posts: m}
}

func (r *memPostRepo) FindSummariesByIDs(_ context.Context, ids []string) ([]entity.BookmarkSummary, error) {
	out := []entity.BookmarkSummary{}
	for _, id := range ids {
		if s, ok := r.posts[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

var _ repository.PostRepository = (*memPostRepo)(nil)
