package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeRisshi25/UrbanPulse/internal/middleware"
	"github.com/codeRisshi25/UrbanPulse/internal/service"
)

// UserController serves the authenticated user's own data.
type UserController struct {
	svc *service.AuthService
}

func NewUserController(svc *service.AuthService) *UserController {
	return &UserController{svc: svc}
}

// Profile returns the stored, role-annotated profile. A valid token for
// a user that no longer exists yields 404.
func (uc *UserController) Profile(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	profile, err := uc.svc.Profile(c.Request.Context(), claims.UserID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "data": profile})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch user profile"})
	}
}

// Me echoes the token claims without touching the store.
func (uc *UserController) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"userId": claims.UserID,
			"number": claims.Number,
			"role":   claims.Role,
		},
	})
}
