package application

import (
	"context"
	"reflect"
	"testing"

	"github.com/partymoa/partymoa-server/internal/domain/entity"
	"github.com/partymoa/partymoa-server/pkg/apperr"
)

func newEngagementFixture(t *testing.T, posts ...entity.BookmarkSummary) (*memUserRepo, *EngagementService) {
	t.Helper()
	repo := newMemUserRepo()
	svc := newAccountService(repo)
	if _, err := svc.SignUp(context.Background(), validSignUp()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	return repo, NewEngagementService(repo, newMemPostRepo(posts...), nil, nil, 0)
}

func TestToggleBookmarkInvolution(t *testing.T) {
	_, svc := newEngagementFixture(t)
	ctx := context.Background()

	res, err := svc.ToggleBookmark(ctx, "Al", "post-1")
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !res.Added {
		t.Error("first toggle should add")
	}
	if len(res.Bookmarks) != 1 || res.Bookmarks[0] != "post-1" {
		t.Errorf("unexpected bookmark set %v", res.Bookmarks)
	}

	res, err = svc.ToggleBookmark(ctx, "Al", "post-1")
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if res.Added {
		t.Error("second toggle should remove")
	}
	if len(res.Bookmarks) != 0 {
		t.Errorf("expected empty bookmark set after involution, got %v", res.Bookmarks)
	}
}

func TestToggleBookmarkUnknownUser(t *testing.T) {
	_, svc := newEngagementFixture(t)
	if _, err := svc.ToggleBookmark(context.Background(), "Nobody", "post-1"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestListBookmarksResolvesInBookmarkOrder(t *testing.T) {
	_, svc := newEngagementFixture(t,
		entity.BookmarkSummary{PostID: "post-a", Title: "Board games", Closed: 0},
		entity.BookmarkSummary{PostID: "post-b", Title: "Bowling", Closed: 1},
	)
	ctx := context.Background()

	for _, id := range []string{"post-b", "post-a"} {
		if _, err := svc.ToggleBookmark(ctx, "Al", id); err != nil {
			t.Fatalf("toggle %s failed: %v", id, err)
		}
	}

	got, err := svc.ListBookmarks(ctx, "Al")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	want := []entity.BookmarkSummary{
		{PostID: "post-b", Title: "Bowling", Closed: 1},
		{PostID: "post-a", Title: "Board games", Closed: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestListBookmarksEmptyIsSuccess(t *testing.T) {
	_, svc := newEngagementFixture(t)
	ctx := context.Background()

	got, err := svc.ListBookmarks(ctx, "Al")
	if err != nil {
		t.Fatalf("list with no bookmarks failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}

	// Bookmarks pointing at posts that no longer resolve are skipped, and
	// that is still a success.
	if _, err := svc.ToggleBookmark(ctx, "Al", "post-gone"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	got, err = svc.ListBookmarks(ctx, "Al")
	if err != nil {
		t.Fatalf("list with dangling bookmark failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected dangling bookmark to be skipped, got %v", got)
	}
}

func TestListBookmarksUnknownUser(t *testing.T) {
	_, svc := newEngagementFixture(t)
	if _, err := svc.ListBookmarks(context.Background(), "Nobody"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
