package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/partymoa/partymoa-server/internal/container"
	handlers "github.com/partymoa/partymoa-server/internal/interface/http"
	"github.com/partymoa/partymoa-server/internal/interface/middleware"
	"github.com/partymoa/partymoa-server/pkg/helpers"
)

// EngagementModule wires bookmark and avatar-purchase routes; everything here
// requires an authenticated caller.
type EngagementModule struct {
	Engagement *handlers.EngagementHandler
	Ledger     *handlers.LedgerHandler
	JWT        *helpers.JWTManager
}

func NewEngagementModule(engagement *handlers.EngagementHandler, ledger *handlers.LedgerHandler, jwt *helpers.JWTManager) *EngagementModule {
	return &EngagementModule{Engagement: engagement, Ledger: ledger, JWT: jwt}
}

func (m *EngagementModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/posts/:postId/bookmark", m.Engagement.ToggleBookmark)
		auth.GET("/bookmarks", m.Engagement.ListBookmarks)
		auth.POST("/avatar", m.Ledger.PurchaseAvatar)
	}
}
