package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/partymoa/partymoa-server/internal/application"
	"github.com/partymoa/partymoa-server/internal/domain/entity"
	"github.com/partymoa/partymoa-server/internal/domain/repository"
	"github.com/partymoa/partymoa-server/pkg/response"
	"github.com/partymoa/partymoa-server/pkg/validation"
)

type AccountHandler struct {
	Accounts *application.AccountService
	Logger   *logrus.Logger
}

func NewAccountHandler(accounts *application.AccountService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Accounts: accounts, Logger: logger}
}

// Binding stays at presence checks only; format and uniqueness rules live in
// the service so their error ordering is preserved.
type signUpRequest struct {
	UserID          string   `json:"userId" binding:"required"`
	Nickname        string   `json:"nickname" binding:"required"`
	Password        string   `json:"password" binding:"required"`
	ConfirmPassword string   `json:"confirmPassword" binding:"required"`
	MyPlace         []string `json:"myPlace"`
	Age             string   `json:"age"`
	Gender          string   `json:"gender"`
	LikedGames      []string `json:"likedGames"`
}

type updateProfileRequest struct {
	Nickname     string   `json:"nickname"`
	MyPlace      []string `json:"myPlace"`
	Age          string   `json:"age"`
	Gender       string   `json:"gender"`
	LikedGames   []string `json:"likedGames"`
	Visibility   string   `json:"visibility"`
	TutorialSeen *bool    `json:"tutorialSeen"`
}

type changePasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required"`
}

func profileView(u *entity.User) gin.H {
	return gin.H{
		"userId":       u.UserID,
		"nickname":     u.Nickname,
		"points":       u.Points,
		"totalPoints":  u.TotalPoints,
		"avatar":       u.Avatar,
		"bookmarks":    u.Bookmarks,
		"myPlace":      u.MyPlace,
		"age":          u.Age,
		"gender":       u.Gender,
		"likedGames":   u.LikedGames,
		"visibility":   u.Visibility,
		"tutorialSeen": u.TutorialSeen,
		"createdAt":    u.CreatedAt,
		"updatedAt":    u.UpdatedAt,
	}
}

func (h *AccountHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Accounts.SignUp(c.Request.Context(), application.SignUpInput{
		UserID:          req.UserID,
		Nickname:        req.Nickname,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		MyPlace:         req.MyPlace,
		Age:             req.Age,
		Gender:          req.Gender,
		LikedGames:      req.LikedGames,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, profileView(u), "account created", nil)
}

func (h *AccountHandler) CheckID(c *gin.Context) {
	if err := h.Accounts.CheckIDAvailable(c.Request.Context(), c.Param("userId")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"available": true}, "user id is available", nil)
}

func (h *AccountHandler) CheckNickname(c *gin.Context) {
	if err := h.Accounts.CheckNicknameAvailable(c.Request.Context(), c.Param("nickname")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"available": true}, "nickname is available", nil)
}

func (h *AccountHandler) GetProfile(c *gin.Context) {
	u, err := h.Accounts.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, profileView(u), "profile", nil)
}

// PublicProfile shows another user's profile by nickname.
func (h *AccountHandler) PublicProfile(c *gin.Context) {
	u, err := h.Accounts.GetPublicProfile(c.Request.Context(), c.Param("nickname"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"nickname":   u.Nickname,
		"avatar":     u.Avatar,
		"myPlace":    u.MyPlace,
		"age":        u.Age,
		"gender":     u.Gender,
		"likedGames": u.LikedGames,
		"visibility": u.Visibility,
	}, "profile", nil)
}

// UpdateProfile maps the wire sentinel (empty string / empty array = leave
// unchanged) onto the patch's absent fields.
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	patch := repository.ProfilePatch{
		Nickname:     optional(req.Nickname),
		MyPlace:      optionalSlice(req.MyPlace),
		Age:          optional(req.Age),
		Gender:       optional(req.Gender),
		LikedGames:   optionalSlice(req.LikedGames),
		Visibility:   optional(req.Visibility),
		TutorialSeen: req.TutorialSeen,
	}
	u, err := h.Accounts.UpdateProfile(c.Request.Context(), c.GetString("userID"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, profileView(u), "profile updated", nil)
}

func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Accounts.ChangePassword(c.Request.Context(), c.GetString("userID"), req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"changed": true}, "password changed", nil)
}

// DeleteAccount removes the caller's own account.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	u, err := h.Accounts.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.Accounts.DeleteAccount(c.Request.Context(), u.Nickname); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "account deleted", nil)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// optionalSlice treats a missing or empty array the same way optional treats
// "": leave the stored value alone. There is no wire form for clearing a
// profile array.
func optionalSlice(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
