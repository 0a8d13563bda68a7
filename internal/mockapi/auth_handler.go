package mockapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"shop_client/internal/domain"
	"shop_client/internal/validation"
)

const invalidLoginMessage = "Invalid username or password"

type AuthHandler struct {
	repo      *Repository
	tokens    *TokenIssuer
	validator *validation.Validator
	log       *logrus.Logger
}

func NewAuthHandler(repo *Repository, tokens *TokenIssuer, v *validation.Validator, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{repo: repo, tokens: tokens, validator: v, log: logger}
}

func (h *AuthHandler) RegisterRoutes(public, protected gin.IRouter) {
	public.POST("/admin/auth/login", h.Login)
	protected.POST("/admin/auth/logout", h.Logout)
	protected.GET("/admin/auth/me", h.Me)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var creds domain.Credentials
	if !bindForm(c, h.validator, h.log, &creds) {
		return
	}

	user, err := h.repo.UserByUsername(creds.Username)
	if err != nil {
		h.log.Warnf("Auth failed - user not found: %s", creds.Username)
		ErrorResponse(c, http.StatusBadRequest, invalidLoginMessage)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			h.log.Warnf("Auth failed - incorrect password for user %s (ID: %s)", creds.Username, user.Profile.ID)
			ErrorResponse(c, http.StatusBadRequest, invalidLoginMessage)
			return
		}
		h.log.Errorf("Error comparing password hash for user %s: %v", creds.Username, err)
		ErrorResponse(c, http.StatusInternalServerError, "Internal error during authentication")
		return
	}

	token, err := h.tokens.Issue(user.Profile.ID, user.Profile.Role)
	if err != nil {
		h.log.Errorf("Failed to issue token for user %s: %v", user.Profile.ID, err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	h.log.Infof("User %s logged in", user.Profile.ID)
	SuccessResponse(c, http.StatusOK, "Login successful", domain.LoginResult{Token: token, User: user.Profile})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims := claimsFrom(c)
	if claims != nil {
		h.tokens.Revoke(claims)
		h.log.Infof("User %s logged out", claims.Subject)
	}
	SuccessResponse(c, http.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	user, err := h.repo.UserByID(claims.Subject)
	if err != nil {
		h.log.Warnf("Token subject %s has no account: %v", claims.Subject, err)
		ErrorResponse(c, http.StatusUnauthorized, "Account no longer exists")
		return
	}
	SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", user.Profile)
}
