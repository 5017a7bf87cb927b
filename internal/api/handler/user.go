package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ronak8595/Backend/internal/api/middleware"
	"github.com/Ronak8595/Backend/internal/api/response"
	"github.com/Ronak8595/Backend/internal/config"
	"github.com/Ronak8595/Backend/internal/domain"
	"github.com/Ronak8595/Backend/internal/media"
	"github.com/Ronak8595/Backend/internal/service"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	users          *service.UserService
	stagingDir     string
	maxUploadBytes int64
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *service.UserService, cfg *config.Config) (*UserHandler, error) {
	if err := os.MkdirAll(cfg.Media.StagingDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	return &UserHandler{
		users:          users,
		stagingDir:     cfg.Media.StagingDir,
		maxUploadBytes: cfg.Media.MaxUploadBytes,
	}, nil
}

// Me returns the authenticated user.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Fail(w, http.StatusUnauthorized, "unauthorized request")
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, user, "current user fetched successfully")
}

// ChangePassword updates the authenticated user's password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Fail(w, http.StatusUnauthorized, "unauthorized request")
		return
	}

	var input domain.PasswordChange
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.Fail(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := h.users.ChangePassword(r.Context(), userID, input); err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, nil, "password changed successfully")
}

// UpdateAccount applies a partial email/fullName update.
func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Fail(w, http.StatusUnauthorized, "unauthorized request")
		return
	}

	var update domain.AccountUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		response.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Struct(update); err != nil {
		response.Fail(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	user, err := h.users.UpdateAccount(r.Context(), userID, update)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, user, "account details updated successfully")
}

// UpdateAvatar replaces the authenticated user's avatar.
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar", h.users.UpdateAvatar)
}

// UpdateCoverImage replaces the authenticated user's cover image.
func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "coverImage", h.users.UpdateCoverImage)
}

func (h *UserHandler) updateImage(
	w http.ResponseWriter,
	r *http.Request,
	field string,
	update func(ctx context.Context, id primitive.ObjectID, path string) (*domain.PublicUser, error),
) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Fail(w, http.StatusUnauthorized, "unauthorized request")
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		response.Fail(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, field+" file is required")
		return
	}
	defer file.Close()

	localPath, err := media.Stage(h.stagingDir, file, header)
	if err != nil {
		response.Fail(w, http.StatusInternalServerError, "failed to stage upload")
		return
	}

	user, err := update(r.Context(), userID, localPath)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, user, field+" updated successfully")
}

// Channel returns the channel profile for the userName path parameter.
func (h *UserHandler) Channel(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Fail(w, http.StatusUnauthorized, "unauthorized request")
		return
	}

	view, err := h.users.ChannelProfile(r.Context(), viewerID, chi.URLParam(r, "userName"))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, view, "channel profile fetched successfully")
}

// WatchHistory returns the authenticated user's watch history in stored order.
func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Fail(w, http.StatusUnauthorized, "unauthorized request")
		return
	}

	views, err := h.users.WatchHistory(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, views, "watch history fetched successfully")
}
