package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aus-site/aus-server/internal/model"
	"github.com/aus-site/aus-server/internal/server/middleware"
	"github.com/aus-site/aus-server/internal/service"
	"github.com/aus-site/aus-server/internal/store"
)

// AuthHandler serves the admin authentication and account management
// endpoints: login, registration, password flows, and the admin list.
type AuthHandler struct {
	store   *store.Store
	authSvc *service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(st *store.Store, authSvc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		store:   st,
		authSvc: authSvc,
		logger:  logger,
	}
}

// credentialsRequest is the expected payload for Login and Register.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// adminPublic is the admin projection embedded in login and register
// responses.
type adminPublic struct {
	Email      string `json:"email"`
	Superadmin *bool  `json:"superadmin,omitempty"`
}

// loginResponse is the response payload for a successful login.
type loginResponse struct {
	Message string      `json:"message"`
	Admin   adminPublic `json:"admin"`
	Token   string      `json:"token"`
}

// Login authenticates an admin and returns a signed bearer token.
// POST /auth/login-admin
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	admin, err := h.store.GetAdminByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same message as a password mismatch so the response does not
			// reveal which of the two fields was wrong.
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error("login lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if !service.CheckPassword(req.Password, admin.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.authSvc.IssueToken(admin.ID, admin.TokenVersion)
	if err != nil {
		h.logger.Error("token issue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	_ = h.store.UpdateAdminLastLogin(r.Context(), admin.ID)

	writeJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		Admin:   adminPublic{Email: admin.Email, Superadmin: &admin.Superadmin},
		Token:   token,
	})
}

// registerResponse is the response payload for a successful registration.
// Registration does not imply a session, so no token is returned.
type registerResponse struct {
	Message string      `json:"message"`
	Admin   adminPublic `json:"admin"`
}

// Register creates a new admin account. Superadmin only; enforced by the
// middleware chain before this handler runs.
// POST /auth/register-admin
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters long")
		return
	}

	if _, err := h.store.GetAdminByEmail(r.Context(), req.Email); err == nil {
		writeError(w, http.StatusConflict, "Admin with this email already exists.")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		h.logger.Error("register lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error during registration.")
		return
	}

	hash, err := service.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("password hash failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error during registration.")
		return
	}

	admin := &model.Admin{
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.store.CreateAdmin(r.Context(), admin); err != nil {
		h.logger.Error("create admin failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error during registration.")
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		Message: "Admin registered successfully.",
		Admin:   adminPublic{Email: admin.Email},
	})
}

// Me returns the authenticated admin's public fields.
// GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin := middleware.AdminFromContext(r.Context())
	if admin == nil {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":         admin.ID,
		"email":      admin.Email,
		"superadmin": admin.Superadmin,
		"createdAt":  admin.CreatedAt,
		"updatedAt":  admin.UpdatedAt,
	})
}

// changePasswordRequest is the expected payload for ChangePassword.
type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword lets an authenticated admin rotate their own password. On
// success the stored token version is bumped, revoking every outstanding
// token, and a fresh token is returned.
// POST /auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	authAdmin := middleware.AdminFromContext(r.Context())
	if authAdmin == nil {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req changePasswordRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "currentPassword and newPassword are required")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "currentPassword and newPassword are required")
		return
	}
	if len(req.NewPassword) < 8 {
		writeError(w, http.StatusBadRequest, "New password must be at least 8 characters long")
		return
	}

	// Re-fetch so the comparison runs against current store state, not the
	// snapshot loaded by the middleware.
	admin, err := h.store.GetAdmin(r.Context(), authAdmin.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Admin not found")
			return
		}
		h.logger.Error("change password lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error updating password")
		return
	}

	if !service.CheckPassword(req.CurrentPassword, admin.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	// Best-effort "must differ" check: the new plaintext is compared against
	// the old digest, so only an exact resubmission of the unchanged
	// password is caught.
	if service.CheckPassword(req.NewPassword, admin.PasswordHash) {
		writeError(w, http.StatusBadRequest, "New password must be different from the old one")
		return
	}

	hash, err := service.HashPassword(req.NewPassword)
	if err != nil {
		h.logger.Error("password hash failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error updating password")
		return
	}

	if err := h.store.UpdateAdminPassword(r.Context(), admin.ID, hash); err != nil {
		h.logger.Error("password update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error updating password")
		return
	}

	// The update bumped the token version; issue a fresh token against it so
	// the caller stays logged in while older tokens die.
	token, err := h.authSvc.IssueToken(admin.ID, admin.TokenVersion+1)
	if err != nil {
		h.logger.Error("token issue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error updating password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Password updated successfully",
		"token":   token,
	})
}

// resetPasswordRequest is the expected payload for ResetPassword.
type resetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// ResetPassword lets a superadmin override another admin's password. No
// current password is required and no token is issued; the target must log
// in fresh, and their outstanding tokens are revoked by the version bump.
// POST /auth/admins/{id}/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid admin id")
		return
	}

	var req resetPasswordRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "newPassword is required")
		return
	}
	if req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "newPassword is required")
		return
	}
	if len(req.NewPassword) < 8 {
		writeError(w, http.StatusBadRequest, "New password must be at least 8 characters long")
		return
	}

	if _, err := h.store.GetAdmin(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Admin not found")
			return
		}
		h.logger.Error("reset password lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error resetting password")
		return
	}

	hash, err := service.HashPassword(req.NewPassword)
	if err != nil {
		h.logger.Error("password hash failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error resetting password")
		return
	}

	if err := h.store.UpdateAdminPassword(r.Context(), id, hash); err != nil {
		h.logger.Error("password reset failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error resetting password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Password reset successfully",
	})
}

// ListAdmins returns all admin accounts projected to their public summary,
// most recently created first. Superadmin only.
// GET /auth/admins
func (h *AuthHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.store.ListAdmins(r.Context())
	if err != nil {
		h.logger.Error("list admins failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error fetching admins")
		return
	}

	summaries := make([]model.AdminSummary, 0, len(admins))
	for _, a := range admins {
		summaries = append(summaries, model.AdminSummary{
			Email:      a.Email,
			Superadmin: a.Superadmin,
			CreatedAt:  a.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"admins": summaries,
	})
}
