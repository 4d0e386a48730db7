package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bobmcallan/horizon/internal/common"
	"github.com/bobmcallan/horizon/internal/models"
)

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// signJWT issues a token whose subject is the stable user id.
func signJWT(user *models.User, config *common.AuthConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.UserID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(config.GetTokenExpiry()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// handleAuthRegister handles POST /api/auth/register.
func (s *Server) handleAuthRegister(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req registerRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		WriteError(w, http.StatusBadRequest, "A valid email is required")
		return
	}
	if len(req.Password) < 8 {
		WriteError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	if _, err := s.app.InternalStore.GetUserByEmail(r.Context(), req.Email); err == nil {
		WriteError(w, http.StatusConflict, "An account with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		WriteError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	user := &models.User{
		UserID:       uuid.New().String(),
		Email:        req.Email,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		PasswordHash: string(hash),
	}
	if err := s.app.InternalStore.SaveUser(r.Context(), user); err != nil {
		s.logger.Error().Err(err).Msg("Failed to save user")
		WriteError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := signJWT(user, &s.app.Config.Auth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign token")
		WriteError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	s.logger.Info().Str("user_id", user.UserID).Msg("User registered")
	WriteJSON(w, http.StatusCreated, authResponse{Token: token, UserID: user.UserID, Email: user.Email})
}

// handleAuthLogin handles POST /api/auth/login.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := s.app.InternalStore.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := signJWT(user, &s.app.Config.Auth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign token")
		WriteError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	WriteJSON(w, http.StatusOK, authResponse{Token: token, UserID: user.UserID, Email: user.Email})
}

// handleAuthValidate handles GET /api/auth/validate. The auth middleware has
// already validated the token by the time this runs.
func (s *Server) handleAuthValidate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uc := common.UserContextFromContext(r.Context())
	if uc == nil {
		WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"user_id": uc.UserID,
		"email":   uc.Email,
	})
}
