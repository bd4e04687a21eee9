package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cheapies/internal/model"
	"github.com/iliyamo/cheapies/internal/repository"
	"github.com/iliyamo/cheapies/internal/utils"
)

// UserHandler serves /api/user.  Responses never include the password hash.
type UserHandler struct {
	Users      UserStore
	BcryptCost int
}

func NewUserHandler(users UserStore, bcryptCost int) *UserHandler {
	return &UserHandler{Users: users, BcryptCost: bcryptCost}
}

type userBody struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func projections(users []model.User) []model.UserProjection {
	out := make([]model.UserProjection, len(users))
	for i, u := range users {
		out[i] = u.Projection()
	}
	return out
}

// List handles GET /api/user.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return internalError(c, "User.List", err)
	}
	return c.JSON(http.StatusOK, projections(users))
}

// Get handles GET /api/user/:id.
func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return notFound(c, "user not found")
		}
		return internalError(c, "User.Get", err)
	}
	return c.JSON(http.StatusOK, u.Projection())
}

// Create handles POST /api/user.
func (h *UserHandler) Create(c echo.Context) error {
	var body userBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Name == nil || strings.TrimSpace(*body.Name) == "" ||
		body.Email == nil || strings.TrimSpace(*body.Email) == "" ||
		body.Password == nil || *body.Password == "" {
		return badRequest(c, "name, email and password are required")
	}
	hash, err := utils.HashPassword(*body.Password, h.BcryptCost)
	if err != nil {
		return internalError(c, "User.Create", err)
	}
	u := &model.User{
		ID:           uuid.NewString(),
		Email:        *body.Email,
		Name:         strings.TrimSpace(*body.Name),
		PasswordHash: hash,
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return internalError(c, "User.Create", err)
	}
	return c.JSON(http.StatusCreated, u.Projection())
}

// Update handles PUT /api/user/:id.  A supplied password is re-hashed.
func (h *UserHandler) Update(c echo.Context) error {
	var body userBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	upd := repository.UserUpdate{}
	if body.Name != nil {
		name := strings.TrimSpace(*body.Name)
		if name == "" {
			return badRequest(c, "name must not be empty")
		}
		upd.Name = &name
	}
	if body.Email != nil {
		if strings.TrimSpace(*body.Email) == "" {
			return badRequest(c, "email must not be empty")
		}
		upd.Email = body.Email
	}
	if body.Password != nil && *body.Password != "" {
		hash, err := utils.HashPassword(*body.Password, h.BcryptCost)
		if err != nil {
			return internalError(c, "User.Update", err)
		}
		upd.PasswordHash = &hash
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	u, err := h.Users.Update(ctx, c.Param("id"), upd)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return notFound(c, "user not found")
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return internalError(c, "User.Update", err)
	}
	return c.JSON(http.StatusOK, u.Projection())
}

// Delete handles DELETE /api/user/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Users.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return notFound(c, "user not found")
		}
		return internalError(c, "User.Delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}
