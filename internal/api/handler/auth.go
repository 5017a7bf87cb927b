package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Ronak8595/Backend/internal/api/middleware"
	"github.com/Ronak8595/Backend/internal/api/response"
	"github.com/Ronak8595/Backend/internal/config"
	"github.com/Ronak8595/Backend/internal/domain"
	"github.com/Ronak8595/Backend/internal/media"
	"github.com/Ronak8595/Backend/internal/service"
)

var validate = validator.New()

// AuthHandler handles the session lifecycle endpoints.
type AuthHandler struct {
	auth            *service.AuthService
	stagingDir      string
	maxUploadBytes  int64
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService, cfg *config.Config) (*AuthHandler, error) {
	if err := os.MkdirAll(cfg.Media.StagingDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	return &AuthHandler{
		auth:            auth,
		stagingDir:      cfg.Media.StagingDir,
		maxUploadBytes:  cfg.Media.MaxUploadBytes,
		accessTokenTTL:  cfg.Auth.AccessTokenTTL,
		refreshTokenTTL: cfg.Auth.RefreshTokenTTL,
	}, nil
}

// Register handles user registration: multipart form fields plus a required
// avatar file and an optional coverImage file.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		response.Fail(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	input := domain.RegisterInput{
		UserName: r.FormValue("userName"),
		Email:    r.FormValue("email"),
		FullName: r.FormValue("fullName"),
		Password: r.FormValue("password"),
	}

	if err := validate.Struct(input); err != nil {
		response.Fail(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	avatarPath, err := h.stageFormFile(r, "avatar")
	if err != nil {
		response.Fail(w, http.StatusInternalServerError, "failed to stage avatar upload")
		return
	}
	coverPath, err := h.stageFormFile(r, "coverImage")
	if err != nil {
		media.Discard(avatarPath)
		response.Fail(w, http.StatusInternalServerError, "failed to stage cover upload")
		return
	}

	user, err := h.auth.Register(r.Context(), input, avatarPath, coverPath)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, user, "user registered successfully")
}

// Login handles user login and sets the session cookies.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input domain.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.Fail(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	user, pair, err := h.auth.Login(r.Context(), input)
	if err != nil {
		response.Error(w, err)
		return
	}

	h.setTokenCookies(w, pair)
	response.OK(w, map[string]any{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "user logged in successfully")
}

// Logout clears the stored refresh token and the session cookies.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Fail(w, http.StatusUnauthorized, "unauthorized request")
		return
	}

	if err := h.auth.Logout(r.Context(), userID); err != nil {
		response.Error(w, err)
		return
	}

	h.clearTokenCookies(w)
	response.OK(w, nil, "user logged out successfully")
}

// Refresh rotates the refresh token taken from the refreshToken cookie or the
// request body and resets the session cookies.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := ""
	if c, err := r.Cookie("refreshToken"); err == nil {
		token = c.Value
	}
	if token == "" {
		var input struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err == nil {
			token = input.RefreshToken
		}
	}

	user, pair, err := h.auth.Refresh(r.Context(), token)
	if err != nil {
		response.Error(w, err)
		return
	}

	h.setTokenCookies(w, pair)
	response.OK(w, map[string]any{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "access token refreshed")
}

// stageFormFile writes the named multipart file to the staging directory.
// A missing file is not an error; the empty path signals absence.
func (h *AuthHandler) stageFormFile(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil
	}
	defer file.Close()

	return media.Stage(h.stagingDir, file, header)
}

func (h *AuthHandler) setTokenCookies(w http.ResponseWriter, pair *domain.TokenPair) {
	http.SetCookie(w, sessionCookie("accessToken", pair.AccessToken, h.accessTokenTTL))
	http.SetCookie(w, sessionCookie("refreshToken", pair.RefreshToken, h.refreshTokenTTL))
}

func (h *AuthHandler) clearTokenCookies(w http.ResponseWriter) {
	http.SetCookie(w, sessionCookie("accessToken", "", -time.Second))
	http.SetCookie(w, sessionCookie("refreshToken", "", -time.Second))
}

func sessionCookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// validationMessage flattens validator errors into a single client message.
func validationMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return "invalid request"
	}

	e := validationErrors[0]
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	default:
		return e.Field() + " failed validation on " + e.Tag()
	}
}
