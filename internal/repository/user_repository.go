package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/doug-martin/goqu/v9"

	"github.com/iliyamo/cheapies/internal/database"
	"github.com/iliyamo/cheapies/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// UserUpdate carries the fields of a partial update.  PasswordHash must
// already be hashed.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

var userColumns = []any{"id", "email", "name", "password", "created_at"}

// NormalizeEmail is applied on every write and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepo) getWhere(ctx context.Context, ex goqu.Ex) (model.User, error) {
	var u model.User
	q, args, err := dialect.From("users").Select(userColumns...).Where(ex).Limit(1).ToSQL()
	if err != nil {
		return u, err
	}
	err = r.DB.QueryRowContext(ctx, q, args...).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.getWhere(ctx, goqu.Ex{"id": id})
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.getWhere(ctx, goqu.Ex{"email": NormalizeEmail(email)})
}

// List returns all users ordered by creation time.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	q, args, err := dialect.From("users").
		Select(userColumns...).
		Order(goqu.C("created_at").Asc(), goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Create inserts the user.  ID and PasswordHash must be set by the caller.
// The stored row (with created_at) is read back into u.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = NormalizeEmail(u.Email)
	q, args, err := dialect.Insert("users").Rows(goqu.Record{
		"id":       u.ID,
		"email":    u.Email,
		"name":     u.Name,
		"password": u.PasswordHash,
	}).ToSQL()
	if err != nil {
		return err
	}
	if _, err := r.DB.ExecContext(ctx, q, args...); err != nil {
		if database.IsDuplicateKey(err) {
			return ErrEmailExists
		}
		return err
	}
	stored, err := r.GetByID(ctx, u.ID)
	if err != nil {
		return err
	}
	*u = stored
	return nil
}

// Update merges the supplied fields and returns the stored row.
func (r *UserRepo) Update(ctx context.Context, id string, upd UserUpdate) (model.User, error) {
	rec := goqu.Record{}
	if upd.Name != nil {
		rec["name"] = *upd.Name
	}
	if upd.Email != nil {
		rec["email"] = NormalizeEmail(*upd.Email)
	}
	if upd.PasswordHash != nil {
		rec["password"] = *upd.PasswordHash
	}
	if len(rec) > 0 {
		q, args, err := dialect.Update("users").Set(rec).Where(goqu.C("id").Eq(id)).ToSQL()
		if err != nil {
			return model.User{}, err
		}
		if _, err := r.DB.ExecContext(ctx, q, args...); err != nil {
			if database.IsDuplicateKey(err) {
				return model.User{}, ErrEmailExists
			}
			return model.User{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user or returns ErrUserNotFound.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	q, args, err := dialect.Delete("users").Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
