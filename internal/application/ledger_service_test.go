package application

import (
	"context"
	"sync"
	"testing"

	"github.com/partymoa/partymoa-server/internal/domain/entity"
	"github.com/partymoa/partymoa-server/pkg/apperr"
)

func newLedgerFixture(t *testing.T, attributeCost int) (*memUserRepo, *LedgerService) {
	t.Helper()
	repo := newMemUserRepo()
	svc := newAccountService(repo)
	if _, err := svc.SignUp(context.Background(), validSignUp()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	return repo, NewLedgerService(repo, nil, attributeCost)
}

func setPoints(t *testing.T, repo *memUserRepo, userID string, points int) {
	t.Helper()
	repo.mu.Lock()
	defer repo.mu.Unlock()
	u, ok := repo.users[userID]
	if !ok {
		t.Fatalf("no such user %q", userID)
	}
	u.Points = points
}

func TestPurchaseAppliesSelectionAndDeducts(t *testing.T) {
	_, svc := newLedgerFixture(t, 500)

	u, err := svc.PurchaseAvatarUpdate(context.Background(), "alice123", map[string]int{"Hair": 4, "Eye": 2})
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if u.Points != entity.DefaultPoints-1000 {
		t.Errorf("points = %d, want %d", u.Points, entity.DefaultPoints-1000)
	}
	if u.TotalPoints != entity.DefaultPoints {
		t.Errorf("total points changed to %d on spend", u.TotalPoints)
	}
	// Untouched attributes keep their defaults.
	want := map[string]int{"Hair": 4, "Eye": 2, "Mouth": 1, "Back": 1}
	for attr, variant := range want {
		if u.Avatar[attr] != variant {
			t.Errorf("avatar[%s] = %d, want %d", attr, u.Avatar[attr], variant)
		}
	}
}

func TestPurchaseInsufficientFundsLeavesBalanceUntouched(t *testing.T) {
	repo, svc := newLedgerFixture(t, 150)
	ctx := context.Background()
	setPoints(t, repo, "alice123", 100)

	_, err := svc.PurchaseAvatarUpdate(ctx, "alice123", map[string]int{"Hair": 2})
	if !apperr.IsKind(err, apperr.KindInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	u, err := repo.GetByUserID(ctx, "alice123")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if u.Points != 100 {
		t.Errorf("failed purchase moved points to %d", u.Points)
	}
	if u.Avatar["Hair"] != 1 {
		t.Errorf("failed purchase changed avatar: %v", u.Avatar)
	}
}

func TestPurchaseValidation(t *testing.T) {
	_, svc := newLedgerFixture(t, 500)
	ctx := context.Background()

	cases := []map[string]int{
		nil,
		{},
		{"Hair": 0},
		{"Hair": -2},
		{"": 3},
	}
	for _, sel := range cases {
		if _, err := svc.PurchaseAvatarUpdate(ctx, "alice123", sel); !apperr.IsKind(err, apperr.KindInvalidInput) {
			t.Errorf("selection %v: expected invalid input, got %v", sel, err)
		}
	}
}

func TestPurchaseUnknownUser(t *testing.T) {
	_, svc := newLedgerFixture(t, 500)
	if _, err := svc.PurchaseAvatarUpdate(context.Background(), "ghost", map[string]int{"Hair": 2}); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestConcurrentPurchasesCannotOverdraw(t *testing.T) {
	repo, svc := newLedgerFixture(t, 600)
	ctx := context.Background()
	setPoints(t, repo, "alice123", 1000)

	// Each purchase costs 600, so of two concurrent purchases exactly one
	// can succeed against a balance of 1000.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.PurchaseAvatarUpdate(ctx, "alice123", map[string]int{"Hair": 3})
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case apperr.IsKind(err, apperr.KindInsufficientFunds):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || insufficient != 1 {
		t.Fatalf("got %d successes and %d insufficient, want 1 and 1", ok, insufficient)
	}

	u, err := repo.GetByUserID(ctx, "alice123")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if u.Points != 400 {
		t.Errorf("final balance %d, want 400", u.Points)
	}
}
