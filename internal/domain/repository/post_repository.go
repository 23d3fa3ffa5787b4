package repository

import (
	"context"

	"github.com/partymoa/partymoa-server/internal/domain/entity"
)

// PostRepository is the read-only lookup collaborator from the post domain.
// Only the summary projection needed for bookmark listing crosses into this
// core; post CRUD and search live elsewhere.
type PostRepository interface {
	FindSummariesByIDs(ctx context.Context, ids []string) ([]entity.BookmarkSummary, error)
}
