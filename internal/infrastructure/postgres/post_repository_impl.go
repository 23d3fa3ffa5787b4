package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/partymoa/partymoa-server/internal/domain/entity"
	"github.com/partymoa/partymoa-server/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

// FindSummariesByIDs resolves post ids to live summaries. Ids that no longer
// resolve are silently dropped; ordering follows the input for stable listings.
func (r *PostRepository) FindSummariesByIDs(ctx context.Context, ids []string) ([]entity.BookmarkSummary, error) {
	if len(ids) == 0 {
		return []entity.BookmarkSummary{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, closed
		FROM posts
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]entity.BookmarkSummary, len(ids))
	for rows.Next() {
		var s entity.BookmarkSummary
		if err := rows.Scan(&s.PostID, &s.Title, &s.Closed); err != nil {
			return nil, err
		}
		byID[s.PostID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]entity.BookmarkSummary, 0, len(byID))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
