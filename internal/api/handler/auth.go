package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"guestdesk/backend/internal/auth"
	"guestdesk/backend/internal/metadata"
	"guestdesk/backend/internal/models"
	"guestdesk/backend/internal/store"
)

type signupRequest struct {
	Email      string          `json:"email"`
	Password   string          `json:"password"`
	Name       string          `json:"name"`
	Role       models.UserRole `json:"role"`
	RoomNumber string          `json:"roomNumber"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// Signup registers an account with the auth provider and seeds its profile
// metadata. Self-signup is role "guest" and honors the feature toggle; an
// authenticated admin may create accounts with any role.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	requester, isAuthed := h.userFromRequest(c)
	isAdmin := isAuthed && requester.Role == models.RoleAdmin

	role := req.Role
	if !isAdmin {
		role = models.RoleGuest
		if !h.Store.Settings().EmailSignupEnabled {
			c.JSON(http.StatusForbidden, gin.H{"error": auth.ErrSignupDisabled.Error()})
			return
		}
	}
	if role == "" {
		role = models.RoleGuest
	}
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	ident, err := h.Provider.SignUp(req.Email, req.Password, req.Name)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	name := req.Name
	if name == "" {
		name = localName(ident.Email)
	}
	patch := metadata.Patch{
		Role:       &role,
		Name:       &name,
		Email:      &ident.Email,
		RoomNumber: &req.RoomNumber,
	}
	if err := h.Store.UpdateUser(ident.UID, patch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
		return
	}

	h.Store.Bus.Publish(store.EventUserRegistered, store.UserRegistered{
		UID:   ident.UID,
		Name:  name,
		Email: ident.Email,
		Role:  string(role),
	})
	h.Store.RecordActivity(models.User{ID: ident.UID, Name: name, Role: role},
		models.ActionRegister, "Account created for "+ident.Email)

	c.JSON(http.StatusCreated, gin.H{"uid": ident.UID, "email": ident.Email})
}

// Login verifies credentials against the provider and issues a session.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ident, token, err := h.Provider.SignIn(req.Email, req.Password)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	if req.Remember {
		if err := h.Meta.SaveRememberedEmail(ident.Email); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remember email"})
			return
		}
	} else if err := h.Meta.ClearRememberedEmail(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear remembered email"})
		return
	}

	meta, err := h.Meta.ReadAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read metadata"})
		return
	}
	user := h.Mapper.Map(ident, meta)

	if err := h.Store.SetUserStatus(ident.UID, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update presence"})
		return
	}
	h.Store.RecordActivity(*user, models.ActionLogin, user.Name+" signed in")

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Logout revokes the session and flips presence to offline.
func (h *Handler) Logout(c *gin.Context) {
	user := currentUser(c)
	if err := h.Provider.SignOut(bearerToken(c)); err != nil {
		writeAuthError(c, err)
		return
	}
	if err := h.Store.SetUserStatus(user.ID, false); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update presence"})
		return
	}
	h.Store.RecordActivity(user, models.ActionLogout, user.Name+" signed out")
	c.Status(http.StatusNoContent)
}

// Me returns the mapped domain user for the current session.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// ResendVerification re-issues the email-verification token. Manually
// triggered and user-paced; the core never retries on its own.
func (h *Handler) ResendVerification(c *gin.Context) {
	user := currentUser(c)
	if err := h.Provider.SendVerificationEmail(user.ID); err != nil {
		writeAuthError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ConfirmVerification consumes a verification token.
func (h *Handler) ConfirmVerification(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
		return
	}
	if err := h.Provider.ConfirmVerification(req.Token); err != nil {
		writeAuthError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SendPasswordReset issues a reset token for the given email.
func (h *Handler) SendPasswordReset(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.Provider.SendPasswordReset(req.Email); err != nil {
		writeAuthError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ResetPassword consumes a reset token and sets the new password.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.Provider.ResetPassword(req.Token, req.Password); err != nil {
		writeAuthError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HasAdmin reports whether any admin account exists yet; the login screen
// uses this for its first-run setup path.
func (h *Handler) HasAdmin(c *gin.Context) {
	meta, err := h.Meta.ReadAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read metadata"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasAdmin": h.Mapper.HasAdmin(meta)})
}

// RememberedEmail returns the stored sign-in email, if any.
func (h *Handler) RememberedEmail(c *gin.Context) {
	email, err := h.Meta.RememberedEmail()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read remembered email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": email})
}

// writeAuthError maps provider and validation errors onto HTTP statuses,
// surfacing the provider's message verbatim for UI-level display.
func writeAuthError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, auth.ErrEmailRequired),
		errors.Is(err, auth.ErrPasswordRequired):
		status = http.StatusBadRequest
	case errors.Is(err, auth.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, auth.ErrWrongPassword),
		errors.Is(err, auth.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, auth.ErrEmailInUse):
		status = http.StatusConflict
	case errors.Is(err, auth.ErrSignupDisabled):
		status = http.StatusForbidden
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func localName(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
