package transport

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"juice-store/internal/logger"
	"juice-store/internal/middleware"
	"juice-store/internal/repository"
	"juice-store/internal/service"

	"github.com/go-chi/chi/v5"
)

// Localized client-facing messages, preserved verbatim from the
// original API contract
const (
	MsgNameMissing       = "O nome não foi inserido!"
	MsgEmailMissing      = "O e-mail não foi inserido!"
	MsgPasswordMissing   = "A senha não foi inserida!"
	MsgConfirmMissing    = "A senha não foi confirmada!"
	MsgPasswordsMismatch = "As senhas não conferem!"
	MsgEmailTaken        = "O e-mail já está sendo usado!"
	MsgUserCreated       = "Usuário cadastrado com sucesso!"
	MsgUserNotFound      = "Usuário não encontrado"
	MsgWrongPassword     = "Senha inválida"
	MsgLoginOK           = "Usuário autenticado com sucesso"
	MsgTokenRequired     = "O token é necessário"
	MsgRefreshInvalid    = "Refresh token inválido"
	MsgAccessTokenOK     = "Access token gerado com sucesso"
	MsgLogoutOK          = "Desconectado com sucesso"
	MsgUserDeleted       = "Usuário deletado com sucesso"
	MsgNoUsers           = "Não há usuários disponíveis no momento."
	MsgNoUsersNamed      = "Sem usuários existentes com o nome %s ou parecido"
	MsgInvalidBody       = "Requisição inválida!"
)

// RegisterRequest represents the registration payload. Field order
// matters: validation reports the first missing field.
type RegisterRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

var registerMessages = map[string]string{
	"Name":                    MsgNameMissing,
	"Email":                   MsgEmailMissing,
	"Password":                MsgPasswordMissing,
	"ConfirmPassword.required": MsgConfirmMissing,
	"ConfirmPassword.eqfield":  MsgPasswordsMismatch,
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

var loginMessages = map[string]string{
	"Email":    MsgEmailMissing,
	"Password": MsgPasswordMissing,
}

// UpdateUserRequest carries the full replacement state for a user.
// Whatever is absent here blanks the stored field; there is no
// merge-patch behavior.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserHandler handles HTTP requests for authentication and user
// administration
type UserHandler struct {
	userService  service.UserService
	audit        *logger.Audit
	isProduction bool
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

// NewUserHandler creates a new UserHandler. isProduction controls the
// Secure attribute on session cookies.
func NewUserHandler(userService service.UserService, audit *logger.Audit, isProduction bool, accessTTL, refreshTTL time.Duration) *UserHandler {
	return &UserHandler{
		userService:  userService,
		audit:        audit,
		isProduction: isProduction,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

// RegisterRoutes registers the auth routes and the protected user
// administration routes
func (h *UserHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/refreshToken", h.RefreshToken)
		r.Get("/logout", h.Logout)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Post("/", h.Register)
		r.Patch("/", h.Update)
		r.Delete("/", h.Delete)
	})
}

// Register handles user registration
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := middleware.DecodeBody(r, &req); err != nil {
		h.audit.Failure("Register user", "malformed request body")
		middleware.RespondWithMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	if err := middleware.ValidateRequest(&req); err != nil {
		if msg, ok := middleware.FirstValidationMessage(err, registerMessages); ok {
			h.audit.Failure("Register user", msg)
			middleware.RespondWithMessage(w, http.StatusBadRequest, msg)
			return
		}
		h.audit.Error("Register user", err)
		middleware.RespondWithServerError(w)
		return
	}

	_, err := h.userService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			h.audit.Failure("Register user", "user with e-mail "+req.Email+" already exists")
			middleware.RespondWithMessage(w, http.StatusConflict, MsgEmailTaken)
			return
		}
		h.audit.Error("Register user", err)
		middleware.RespondWithServerError(w)
		return
	}

	h.audit.Success("Register user", "user created")
	middleware.RespondWithMessage(w, http.StatusCreated, MsgUserCreated)
}

// Login authenticates a user and sets the session cookies
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := middleware.DecodeBody(r, &req); err != nil {
		h.audit.Failure("User log in", "malformed request body")
		middleware.RespondWithMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	if err := middleware.ValidateRequest(&req); err != nil {
		if msg, ok := middleware.FirstValidationMessage(err, loginMessages); ok {
			h.audit.Failure("User log in", msg)
			middleware.RespondWithMessage(w, http.StatusBadRequest, msg)
			return
		}
		h.audit.Error("User log in", err)
		middleware.RespondWithServerError(w)
		return
	}

	accessToken, refreshToken, user, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			h.audit.Failure("User log in", "user not found")
			middleware.RespondWithMessage(w, http.StatusNotFound, MsgUserNotFound)
		case errors.Is(err, service.ErrInvalidCredentials):
			h.audit.Failure("User log in", "wrong password")
			middleware.RespondWithMessage(w, http.StatusUnauthorized, MsgWrongPassword)
		default:
			h.audit.Error("User log in", err)
			middleware.RespondWithServerError(w)
		}
		return
	}

	h.setSessionCookie(w, middleware.AccessTokenCookie, accessToken, h.accessTTL)
	h.setSessionCookie(w, refreshTokenCookie, refreshToken, h.refreshTTL)

	h.audit.Success("User log in", "user "+user.ID+" logged in")
	middleware.RespondWithMessage(w, http.StatusOK, MsgLoginOK)
}

// RefreshToken mints a new access token from the refreshToken cookie
func (h *UserHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshTokenCookie)
	if err != nil || cookie.Value == "" {
		h.audit.Failure("Refresh access token", "refresh token not provided")
		middleware.RespondWithMessage(w, http.StatusBadRequest, MsgTokenRequired)
		return
	}

	accessToken, err := h.userService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) || errors.Is(err, service.ErrInvalidToken) {
			h.audit.Failure("Refresh access token", "invalid refresh token")
			middleware.RespondWithMessage(w, http.StatusUnauthorized, MsgRefreshInvalid)
			return
		}
		h.audit.Error("Refresh access token", err)
		middleware.RespondWithServerError(w)
		return
	}

	h.setSessionCookie(w, middleware.AccessTokenCookie, accessToken, h.accessTTL)

	h.audit.Success("Refresh access token", "access token refreshed")
	middleware.RespondWithMessage(w, http.StatusOK, MsgAccessTokenOK)
}

// Logout clears both session cookies. Tokens are not persisted server
// side, so there is nothing else to revoke.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w, middleware.AccessTokenCookie)
	h.clearSessionCookie(w, refreshTokenCookie)

	h.audit.Success("User log out", "user logged out")
	middleware.RespondWithMessage(w, http.StatusOK, MsgLogoutOK)
}

// List returns users filtered by id or name substring, or everything.
// An empty result under a filter is a not-found condition, not an
// empty-array success.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	name := r.URL.Query().Get("name")

	if name != "" {
		users, err := h.userService.List(r.Context(), name)
		if err != nil {
			h.audit.Error("Filter users by name", err)
			middleware.RespondWithServerError(w)
			return
		}
		if len(users) == 0 {
			h.audit.Failure("Filter users by name", "no users with name "+name+" or similar")
			middleware.RespondWithMessage(w, http.StatusNotFound, fmt.Sprintf(MsgNoUsersNamed, name))
			return
		}

		h.audit.Success("Filter users by name", "returned users with name "+name+" or similar")
		middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"users": users})
		return
	}

	if id != "" {
		user, err := h.userService.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				h.audit.Failure("Find user by ID", "no user found with ID "+id)
				middleware.RespondWithMessage(w, http.StatusNotFound, MsgUserNotFound)
				return
			}
			h.audit.Error("Find user by ID", err)
			middleware.RespondWithServerError(w)
			return
		}

		h.audit.Success("Find user by ID", "returned user with ID "+id)
		middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user})
		return
	}

	users, err := h.userService.List(r.Context(), "")
	if err != nil {
		h.audit.Error("Get all users", err)
		middleware.RespondWithServerError(w)
		return
	}
	if len(users) == 0 {
		h.audit.Failure("Get all users", "no user found")
		middleware.RespondWithMessage(w, http.StatusNotFound, MsgNoUsers)
		return
	}

	h.audit.Success("Get all users", "returned all users")
	middleware.RespondWithJSON(w, http.StatusOK, users)
}

// Update replaces a user's fields wholesale with whatever was sent
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	var req UpdateUserRequest
	if err := middleware.DecodeBody(r, &req); err != nil {
		h.audit.Failure("Update user", "malformed request body")
		middleware.RespondWithMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	if err := h.userService.Update(r.Context(), id, req.Name, req.Email, req.Password); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			h.audit.Failure("Update user", "no user found with ID "+id)
			middleware.RespondWithMessage(w, http.StatusNotFound, MsgUserNotFound)
			return
		}
		h.audit.Error("Update user", err)
		middleware.RespondWithServerError(w)
		return
	}

	h.audit.Success("Update user", "the user "+id+" has been updated")
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a user by identifier
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	if err := h.userService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			h.audit.Failure("Delete user", "no user found with ID "+id)
			middleware.RespondWithMessage(w, http.StatusNotFound, MsgUserNotFound)
			return
		}
		h.audit.Error("Delete user", err)
		middleware.RespondWithServerError(w)
		return
	}

	h.audit.Success("Delete user", "the user "+id+" has been deleted")
	middleware.RespondWithMessage(w, http.StatusOK, MsgUserDeleted)
}
