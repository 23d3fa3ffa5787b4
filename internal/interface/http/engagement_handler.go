package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/partymoa/partymoa-server/internal/application"
	"github.com/partymoa/partymoa-server/pkg/response"
)

type EngagementHandler struct {
	Accounts   *application.AccountService
	Engagement *application.EngagementService
	Logger     *logrus.Logger
}

func NewEngagementHandler(accounts *application.AccountService, engagement *application.EngagementService, logger *logrus.Logger) *EngagementHandler {
	return &EngagementHandler{Accounts: accounts, Engagement: engagement, Logger: logger}
}

// callerNickname resolves the authenticated user's nickname; bookmarks are
// keyed by nickname in storage.
func (h *EngagementHandler) callerNickname(c *gin.Context) (string, bool) {
	u, err := h.Accounts.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return "", false
	}
	return u.Nickname, true
}

func (h *EngagementHandler) ToggleBookmark(c *gin.Context) {
	nickname, ok := h.callerNickname(c)
	if !ok {
		return
	}
	res, err := h.Engagement.ToggleBookmark(c.Request.Context(), nickname, c.Param("postId"))
	if err != nil {
		fail(c, err)
		return
	}
	msg := "bookmark removed"
	if res.Added {
		msg = "bookmark added"
	}
	response.Success(c, http.StatusOK, res, msg, nil)
}

func (h *EngagementHandler) ListBookmarks(c *gin.Context) {
	nickname, ok := h.callerNickname(c)
	if !ok {
		return
	}
	summaries, err := h.Engagement.ListBookmarks(c.Request.Context(), nickname)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, summaries, "bookmarks", gin.H{"count": len(summaries)})
}
