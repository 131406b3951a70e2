package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/peeves/backend/internal/application/identity"
	"github.com/peeves/backend/internal/interfaces/http/middleware"
)

// AccountHandler handles the user profile and admin claim management
type AccountHandler struct {
	BaseHandler
	accountService *identityapp.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *identityapp.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// RegisterRoutes registers profile and admin account routes
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	account := rg.Group("/account")
	{
		account.GET("/profile", h.GetProfile)
		account.PUT("/profile", h.UpdateProfile)
	}

	admin := rg.Group("/admin/users", middleware.RequireAdmin())
	{
		admin.POST("/admin", h.SetAdmin)
	}
}

// GetProfile returns the authenticated user's profile
func (h *AccountHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.accountService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// UpdateProfile updates the shipping details of the authenticated user
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.accountService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// SetAdmin grants or revokes the admin claim for the account with the
// given email
func (h *AccountHandler) SetAdmin(c *gin.Context) {
	var req identityapp.SetAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.accountService.SetAdminByEmail(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}
