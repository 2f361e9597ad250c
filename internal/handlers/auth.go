package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-management-server/internal/apperrors"
	"hospital-management-server/internal/config"
	"hospital-management-server/internal/middleware"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/utils"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg}
}

// RegisterRequest represents the request body for patient self-registration.
type RegisterRequest struct {
	Username   string `json:"username" binding:"required,min=3"`
	Password   string `json:"password" binding:"required,min=8"`
	Name       string `json:"name" binding:"required"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	Phone      string `json:"phone"`
	Email      string `json:"email" binding:"omitempty,email"`
	Address    string `json:"address"`
	BloodGroup string `json:"bloodGroup"`
}

// Register handles patient self-registration. The account and the patient
// profile are created in one transaction; a taken username aborts the whole
// operation with no partial write.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user := models.User{
		Username: req.Username,
		Role:     models.RolePatient,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.StoreError(c, "Failed to hash password: "+err.Error())
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		patient := models.Patient{
			UserID:     user.ID,
			Name:       req.Name,
			Age:        req.Age,
			Gender:     req.Gender,
			Phone:      req.Phone,
			Email:      req.Email,
			Address:    req.Address,
			BloodGroup: req.BloodGroup,
			IsActive:   true,
		}
		return tx.Create(&patient).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, apperrors.DuplicateUsername, "Username already exists")
		} else {
			utils.StoreError(c, "Failed to register: "+err.Error())
		}
		return
	}

	utils.Created(c, "Registration successful", user.Sanitize())
}

// LoginRequest represents the request body for login. The caller claims a
// role and the account is looked up by username AND role.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin doctor patient"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	AccessToken  string               `json:"accessToken"`
	RefreshToken string               `json:"refreshToken"`
	User         models.UserSanitized `json:"user"`
}

// Login authenticates a user. The same INVALID_CREDENTIALS error covers
// unknown username, wrong role, wrong password and deactivated accounts, so
// usernames cannot be enumerated.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	err := h.DB.Where("username = ? AND role = ?", req.Username, models.Role(req.Role)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Unauthorized(c, apperrors.InvalidCredentials, "Invalid credentials")
		} else {
			utils.StoreError(c, "Database error: "+err.Error())
		}
		return
	}

	if !user.IsActive || !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, apperrors.InvalidCredentials, "Invalid credentials")
		return
	}

	accessToken, refreshTokenString, err := utils.GenerateTokens(&user, h.Cfg)
	if err != nil {
		utils.StoreError(c, "Failed to generate tokens: "+err.Error())
		return
	}

	refreshToken := models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.JWTRefreshExpirationHours) * time.Hour),
		IsRevoked: false,
	}
	if err := h.DB.Create(&refreshToken).Error; err != nil {
		utils.StoreError(c, "Failed to store refresh token: "+err.Error())
		return
	}

	c.SetCookie(
		"refresh_token",
		refreshTokenString,
		h.Cfg.JWTRefreshExpirationHours*60*60,
		"/",
		"",
		h.Cfg.Environment != "development",
		true,
	)

	utils.Success(c, "Login successful", LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         user.Sanitize(),
	})
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshTokenResponse represents the response body for successful token refresh.
type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken rotates a refresh token and issues a new access token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshTokenString, err := c.Cookie("refresh_token")
	if err != nil || refreshTokenString == "" {
		var req RefreshTokenRequest
		if !utils.BindAndValidate(c, &req) {
			return
		}
		refreshTokenString = req.RefreshToken
	}

	claims, err := utils.ValidateToken(refreshTokenString, h.Cfg.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, apperrors.AuthenticationRequired, "Invalid refresh token: "+err.Error())
		return
	}

	var storedToken models.RefreshToken
	err = h.DB.Where("token = ? AND user_id = ? AND is_revoked = ? AND expires_at > ?",
		refreshTokenString, claims.UserID, false, time.Now()).First(&storedToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Unauthorized(c, apperrors.AuthenticationRequired, "Refresh token not found, expired, or revoked")
		} else {
			utils.StoreError(c, "Database error checking refresh token: "+err.Error())
		}
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		utils.StoreError(c, "Failed to find user associated with token: "+err.Error())
		return
	}
	if !user.IsActive {
		utils.Unauthorized(c, apperrors.InvalidCredentials, "Invalid credentials")
		return
	}

	// Rotate: revoke the presented token, then persist the replacement.
	storedToken.IsRevoked = true
	if err := h.DB.Save(&storedToken).Error; err != nil {
		utils.StoreError(c, "Failed to revoke refresh token: "+err.Error())
		return
	}

	newAccessToken, newRefreshTokenString, err := utils.GenerateTokens(&user, h.Cfg)
	if err != nil {
		utils.StoreError(c, "Failed to generate new tokens: "+err.Error())
		return
	}

	newRefreshToken := models.RefreshToken{
		UserID:    user.ID,
		Token:     newRefreshTokenString,
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.JWTRefreshExpirationHours) * time.Hour),
		IsRevoked: false,
	}
	if err := h.DB.Create(&newRefreshToken).Error; err != nil {
		utils.StoreError(c, "Failed to store new refresh token: "+err.Error())
		return
	}

	c.SetCookie(
		"refresh_token",
		newRefreshTokenString,
		h.Cfg.JWTRefreshExpirationHours*60*60,
		"/",
		"",
		h.Cfg.Environment != "development",
		true,
	)

	utils.Success(c, "Access token refreshed successfully", RefreshTokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshTokenString,
	})
}

// LogoutRequest represents the request body for logout.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Logout revokes the presented refresh token and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshTokenString, err := c.Cookie("refresh_token")
	if err != nil || refreshTokenString == "" {
		var req LogoutRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshTokenString = req.RefreshToken
		}
	}

	if refreshTokenString != "" {
		var storedToken models.RefreshToken
		err := h.DB.Where("token = ? AND is_revoked = ?", refreshTokenString, false).First(&storedToken).Error
		switch {
		case err == nil:
			storedToken.IsRevoked = true
			storedToken.ExpiresAt = time.Now()
			if err := h.DB.Save(&storedToken).Error; err != nil {
				utils.StoreError(c, "Failed to revoke refresh token: "+err.Error())
				return
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			utils.StoreError(c, "Database error during logout: "+err.Error())
			return
		}
	}

	c.SetCookie(
		"refresh_token",
		"",
		-1,
		"/",
		"",
		h.Cfg.Environment != "development",
		true,
	)

	utils.Success(c, "Logout successful", nil)
}

// GetProfile fetches the currently authenticated account.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, apperrors.AuthenticationRequired, "User not authenticated")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User profile not found")
		} else {
			utils.StoreError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Profile fetched successfully", user.Sanitize())
}
