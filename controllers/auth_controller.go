package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/services"
	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/utils"
)

type AuthController struct {
	Session *services.Session
}

func NewAuthController(session *services.Session) *AuthController {
	return &AuthController{Session: session}
}

// authStatus maps a failure reason to an HTTP status; the response body
// carries the reason's user-readable message.
func authStatus(reason services.AuthReason) int {
	switch reason {
	case services.AuthInvalidCredential:
		return http.StatusUnauthorized
	case services.AuthEmailInUse:
		return http.StatusConflict
	case services.AuthWeakPassword:
		return http.StatusBadRequest
	case services.AuthOriginNotAuthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func respondAuthError(c *gin.Context, err error) {
	if ae, ok := services.AsAuthError(err); ok {
		c.JSON(authStatus(ae.Reason), gin.H{"error": ae.Error(), "reason": string(ae.Reason)})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
}

func (a *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := a.Session.Register(c.Request.Context(), input.Email, input.Password, input.FullName)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := utils.GenerateJWT(identity.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := a.Session.SignIn(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := utils.GenerateJWT(identity.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

type FederatedInput struct {
	Email string `json:"email" binding:"required,email"`
}

// LoginFederated trusts the provider-verified email only for allow-listed
// request origins.
func (a *AuthController) LoginFederated(c *gin.Context) {
	var input FederatedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := a.Session.SignInFederated(c.Request.Context(), c.GetHeader("Origin"), input.Email)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := utils.GenerateJWT(identity.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout always succeeds from the client's point of view.
func (a *AuthController) Logout(c *gin.Context) {
	email := c.GetString("email")
	a.Session.SignOut(c.Request.Context(), &services.Identity{ID: email, Email: email})
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

func (a *AuthController) ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	a.Session.Auth.StartPasswordReset(input.Email)

	// same answer whether or not the account exists
	c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a reset code has been sent"})
}

func (a *AuthController) ResetPassword(c *gin.Context) {
	var input struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := a.Session.Auth.CompletePasswordReset(input.Token, input.NewPassword); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}
