package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskhive-be/internal/models"
	"taskhive-be/internal/oauth"
	"taskhive-be/internal/service"
)

const oauthStateCookie = "oauth_state"

type AuthController struct {
	authService service.AuthService
	google      *oauth.GoogleProvider
	frontendURL string
}

func NewAuthController(authService service.AuthService, google *oauth.GoogleProvider, frontendURL string) *AuthController {
	return &AuthController{
		authService: authService,
		google:      google,
		frontendURL: frontendURL,
	}
}

// Register handles POST /api/v1/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	response, err := ac.authService.Register(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login handles POST /api/v1/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	response, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GoogleLogin handles GET /api/v1/auth/google - redirects to the Google
// consent screen
func (ac *AuthController) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, ac.google.LoginURL(state))
}

// GoogleCallback handles GET /api/v1/auth/google/callback - exchanges the
// authorization code, logs the user in, and hands the token back to the
// frontend via redirect
func (ac *AuthController) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		ac.redirectWithError(c, "invalid_state")
		return
	}

	code := c.Query("code")
	if code == "" {
		ac.redirectWithError(c, "missing_code")
		return
	}

	info, err := ac.google.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		ac.redirectWithError(c, "oauth_failed")
		return
	}

	response, err := ac.authService.LoginWithGoogle(c.Request.Context(), info)
	if err != nil {
		ac.redirectWithError(c, "login_failed")
		return
	}

	userJSON, err := json.Marshal(response.User)
	if err != nil {
		ac.redirectWithError(c, "login_failed")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf(
		"%s/auth/callback?token=%s&user=%s",
		ac.frontendURL,
		url.QueryEscape(response.Token),
		url.QueryEscape(string(userJSON)),
	))
}

func (ac *AuthController) redirectWithError(c *gin.Context, reason string) {
	c.Redirect(http.StatusFound, fmt.Sprintf("%s/login?error=%s", ac.frontendURL, reason))
}

// RequestPasswordReset handles POST /api/v1/auth/password-reset/request
func (ac *AuthController) RequestPasswordReset(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := ac.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset OTP sent to your email"})
}

// VerifyOTP handles POST /api/v1/auth/password-reset/verify
func (ac *AuthController) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := ac.authService.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP verified successfully"})
}

// ResetPassword handles POST /api/v1/auth/password-reset
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := ac.authService.ResetPassword(c.Request.Context(), req.Email, req.Password); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}
