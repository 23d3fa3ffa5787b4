package router

import (
	"github.com/partymoa/partymoa-server/internal/application"
	"github.com/partymoa/partymoa-server/internal/container"
	pginfra "github.com/partymoa/partymoa-server/internal/infrastructure/postgres"
	handlers "github.com/partymoa/partymoa-server/internal/interface/http"
	"github.com/partymoa/partymoa-server/internal/router/modules"
)

// InitModules constructs the repository/service/handler graph from the
// container singletons and registers every feature module.
// Call once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(container.GetPGPool())
	posts := pginfra.NewPostRepository(container.GetPGPool())

	accounts := application.NewAccountService(users, container.GetHasher(), logger, container.GetRabbitPub())
	sessions := application.NewSessionService(users, container.GetJWT(), logger)
	engagement := application.NewEngagementService(users, posts, container.GetRedis(), logger, cfg.BookmarkCacheTTL)
	ledger := application.NewLedgerService(users, logger, cfg.AvatarAttributeCost)

	accountHandler := handlers.NewAccountHandler(accounts, logger)
	sessionHandler := handlers.NewSessionHandler(accounts, sessions, logger, cfg.CookieDomain, cfg.CookieSecure)
	engagementHandler := handlers.NewEngagementHandler(accounts, engagement, logger)
	ledgerHandler := handlers.NewLedgerHandler(ledger, logger)

	r.Add(modules.NewAccountModule(accountHandler, sessionHandler, container.GetJWT()))
	r.Add(modules.NewEngagementModule(engagementHandler, ledgerHandler, container.GetJWT()))
}
