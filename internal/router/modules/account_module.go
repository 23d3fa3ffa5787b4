package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/partymoa/partymoa-server/internal/container"
	handlers "github.com/partymoa/partymoa-server/internal/interface/http"
	"github.com/partymoa/partymoa-server/internal/interface/middleware"
	"github.com/partymoa/partymoa-server/pkg/helpers"
)

// AccountModule wires signup, session and profile routes.
// Public: POST /api/signup, availability checks, POST /api/login, POST /api/refresh
// Protected: logout, profile read/update, password change, account deletion,
// public profile lookup.
type AccountModule struct {
	Accounts *handlers.AccountHandler
	Sessions *handlers.SessionHandler
	JWT      *helpers.JWTManager
}

func NewAccountModule(accounts *handlers.AccountHandler, sessions *handlers.SessionHandler, jwt *helpers.JWTManager) *AccountModule {
	return &AccountModule{Accounts: accounts, Sessions: sessions, JWT: jwt}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	signupLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/signup", signupLimiter, m.Accounts.SignUp)
	rg.GET("/signup/check-id/:userId", m.Accounts.CheckID)
	rg.GET("/signup/check-nickname/:nickname", m.Accounts.CheckNickname)
	rg.POST("/login", loginLimiter, m.Sessions.Login)
	rg.POST("/refresh", refreshLimiter, m.Sessions.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.POST("/logout", m.Sessions.Logout)
		auth.GET("/profile", m.Accounts.GetProfile)
		auth.PUT("/profile", m.Accounts.UpdateProfile)
		auth.PUT("/password", m.Accounts.ChangePassword)
		auth.DELETE("/account", m.Accounts.DeleteAccount)
		auth.GET("/users/:nickname", m.Accounts.PublicProfile)
	}
}
