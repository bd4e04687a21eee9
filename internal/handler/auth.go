package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cheapies/internal/middleware"
	"github.com/iliyamo/cheapies/internal/model"
	"github.com/iliyamo/cheapies/internal/repository"
	"github.com/iliyamo/cheapies/internal/utils"
)

// AuthHandler bundles dependencies for the credential sign-in endpoints.
type AuthHandler struct {
	Users      UserStore
	Secret     string
	MaxAge     time.Duration
	BcryptCost int
	Secure     bool
}

func NewAuthHandler(users UserStore, secret string, maxAge time.Duration, bcryptCost int, secure bool) *AuthHandler {
	return &AuthHandler{Users: users, Secret: secret, MaxAge: maxAge, BcryptCost: bcryptCost, Secure: secure}
}

// ----- DTOs -----

type credentialsReq struct {
	Mode     string `json:"mode" form:"mode"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Username string `json:"username" form:"username"`
}

const (
	modeRegister = "register"
	modeLogin    = "login"
)

// Credentials handles POST /api/auth/callback/credentials.  mode=register
// creates the account, mode=login checks the password; both sign the user in.
func (h *AuthHandler) Credentials(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Email = repository.NormalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email/password required")
	}

	var (
		u   model.User
		err error
	)
	switch req.Mode {
	case modeRegister:
		u, err = h.register(c, req)
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Email is already in use. Try login."})
		}
	case modeLogin:
		u, err = h.login(c, req)
		if errors.Is(err, errBadCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
	default:
		return badRequest(c, "mode must be login or register")
	}
	if err != nil {
		return internalError(c, "Auth.Credentials", err)
	}

	tok, cl, err := utils.IssueSession(h.Secret, utils.ClaimsFromUser(u.Projection()), time.Now(), h.MaxAge)
	if err != nil {
		return internalError(c, "Auth.Credentials", err)
	}
	middleware.SetSessionCookie(c, tok, h.MaxAge, h.Secure)
	return c.JSON(http.StatusOK, utils.SessionFromClaims(cl))
}

var errBadCredentials = errors.New("invalid credentials")

func (h *AuthHandler) register(c echo.Context, req credentialsReq) (model.User, error) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.Users.GetByEmail(ctx, req.Email); err == nil {
		return model.User{}, repository.ErrEmailExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.User{}, err
	}
	hash, err := utils.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		return model.User{}, err
	}
	u := model.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         strings.TrimSpace(req.Username),
		PasswordHash: hash,
	}
	// The unique index still catches a concurrent registration.
	if err := h.Users.Create(ctx, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (h *AuthHandler) login(c echo.Context, req credentialsReq) (model.User, error) {
	ctx, cancel := requestContext(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		utils.BurnPasswordCheck(req.Password, h.BcryptCost)
		return model.User{}, errBadCredentials
	}
	if err != nil {
		return model.User{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return model.User{}, errBadCredentials
	}
	return u, nil
}

// Session handles GET /api/auth/session and returns {} when signed out.
func (h *AuthHandler) Session(c echo.Context) error {
	cl, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{})
	}
	return c.JSON(http.StatusOK, utils.SessionFromClaims(cl))
}

// SignOut handles POST /api/auth/signout.
func (h *AuthHandler) SignOut(c echo.Context) error {
	middleware.ClearSessionCookie(c, h.Secure)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
