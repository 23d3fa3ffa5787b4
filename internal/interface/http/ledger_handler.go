package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/partymoa/partymoa-server/internal/application"
	"github.com/partymoa/partymoa-server/pkg/response"
	"github.com/partymoa/partymoa-server/pkg/validation"
)

type LedgerHandler struct {
	Ledger *application.LedgerService
	Logger *logrus.Logger
}

func NewLedgerHandler(ledger *application.LedgerService, logger *logrus.Logger) *LedgerHandler {
	return &LedgerHandler{Ledger: ledger, Logger: logger}
}

type purchaseAvatarRequest struct {
	Selection map[string]int `json:"selection" binding:"required"`
}

func (h *LedgerHandler) PurchaseAvatar(c *gin.Context) {
	var req purchaseAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Ledger.PurchaseAvatarUpdate(c.Request.Context(), c.GetString("userID"), req.Selection)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"avatar":      u.Avatar,
		"points":      u.Points,
		"totalPoints": u.TotalPoints,
	}, "avatar updated", gin.H{"cost": h.Ledger.Cost(req.Selection)})
}
