package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/partymoa/partymoa-server/internal/domain/entity"
	"github.com/partymoa/partymoa-server/internal/domain/repository"
)

const userColumns = `id, user_id, nickname, password_hash, refresh_token, points, total_points,
		avatar, bookmarks, my_place, age, gender, liked_games, visibility, tutorial_seen,
		created_at, updated_at`

// uniqueViolation is the Postgres error code for a unique-constraint breach;
// it is the authoritative duplicate signal, application pre-checks are only a
// fast path.
const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.UserID, &u.Nickname, &u.PasswordHash, &u.RefreshToken,
		&u.Points, &u.TotalPoints, &u.Avatar, &u.Bookmarks, &u.MyPlace, &u.Age,
		&u.Gender, &u.LikedGames, &u.Visibility, &u.TutorialSeen,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (user_id, nickname, password_hash, points, total_points,
			avatar, bookmarks, my_place, age, gender, liked_games, visibility, tutorial_seen)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`, u.UserID, u.Nickname, u.PasswordHash, u.Points, u.TotalPoints,
		u.Avatar, u.Bookmarks, u.MyPlace, u.Age, u.Gender, u.LikedGames, u.Visibility, u.TutorialSeen)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return translate(err)
	}
	return nil
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE user_id = $1
	`, userID))
}

func (r *UserRepository) GetByNickname(ctx context.Context, nickname string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE nickname = $1
	`, nickname))
}

func (r *UserRepository) GetByRefreshToken(ctx context.Context, token string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE refresh_token = $1 AND refresh_token <> ''
	`, token))
}

// UpdateProfile substitutes stored values for absent patch fields inside a
// single statement, so concurrent profile updates cannot resurrect stale reads.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID string, patch repository.ProfilePatch) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `
		UPDATE users SET
			nickname      = COALESCE($2, nickname),
			my_place      = COALESCE($3, my_place),
			age           = COALESCE($4, age),
			gender        = COALESCE($5, gender),
			liked_games   = COALESCE($6, liked_games),
			visibility    = COALESCE($7, visibility),
			tutorial_seen = COALESCE($8, tutorial_seen),
			updated_at    = now()
		WHERE user_id = $1
		RETURNING `+userColumns+`
	`, userID, patch.Nickname, patch.MyPlace, patch.Age, patch.Gender,
		patch.LikedGames, patch.Visibility, patch.TutorialSeen))
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now() WHERE user_id = $1
	`, userID, hash)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateRefreshToken overwrites the single refresh-token slot, last write wins.
func (r *UserRepository) UpdateRefreshToken(ctx context.Context, userID, token string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET refresh_token = $2, updated_at = now() WHERE user_id = $1
	`, userID, token)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ToggleBookmark flips membership of postID in one statement; the RETURNING
// clause sees the post-update row, so membership there means the post was added.
func (r *UserRepository) ToggleBookmark(ctx context.Context, nickname, postID string) (bool, []string, error) {
	var added bool
	var bookmarks []string
	err := r.pool.QueryRow(ctx, `
		UPDATE users SET
			bookmarks = CASE WHEN $2 = ANY(bookmarks)
				THEN array_remove(bookmarks, $2)
				ELSE array_append(bookmarks, $2) END,
			updated_at = now()
		WHERE nickname = $1
		RETURNING $2 = ANY(bookmarks), bookmarks
	`, nickname, postID).Scan(&added, &bookmarks)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil, repository.ErrNotFound
		}
		return false, nil, err
	}
	return added, bookmarks, nil
}

// DeductPoints is the check-then-act closed at the storage layer: the balance
// guard sits in the WHERE clause, so two concurrent purchases can never both
// spend the same points. The avatar merge only touches supplied attributes.
func (r *UserRepository) DeductPoints(ctx context.Context, userID string, cost int, avatar map[string]int) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `
		UPDATE users SET
			points = points - $2,
			avatar = avatar || $3,
			updated_at = now()
		WHERE user_id = $1 AND points >= $2
		RETURNING `+userColumns+`
	`, userID, cost, avatar))
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	// Zero rows: tell a missing user apart from a short balance.
	var exists bool
	if scanErr := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE user_id = $1)`, userID).Scan(&exists); scanErr != nil {
		return nil, scanErr
	}
	if !exists {
		return nil, repository.ErrNotFound
	}
	return nil, repository.ErrInsufficient
}

func (r *UserRepository) DeleteByNickname(ctx context.Context, nickname string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE nickname = $1`, nickname)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
