package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"github.com/codeRisshi25/UrbanPulse/internal/service"
	"github.com/codeRisshi25/UrbanPulse/internal/validation"
)

// AuthController adapts the register/login flows to HTTP.
type AuthController struct {
	svc *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

func (ac *AuthController) Register(c *gin.Context) {
	var input validation.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  []validation.FieldError{{Field: "body", Message: "Request body must be valid JSON"}},
		})
		return
	}

	if errs := validation.Check(input); len(errs) > 0 {
		logrus.WithField("errors", errs).Debug("registration validation failed")
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  errs,
		})
		return
	}

	result, err := ac.svc.Register(c.Request.Context(), input.Name, input.Number, input.Password, input.Role)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "User registered successfully",
			"data":    result,
		})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "User with this phone number already exists",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Registration failed. Please try again.",
		})
	}
}

func (ac *AuthController) Login(c *gin.Context) {
	var input validation.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  []validation.FieldError{{Field: "body", Message: "Request body must be valid JSON"}},
		})
		return
	}

	if errs := validation.Check(input); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  errs,
		})
		return
	}

	result, err := ac.svc.Login(c.Request.Context(), input.Number, input.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Login successful",
			"data":    result,
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid credentials",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Login failed. Please try again.",
		})
	}
}
