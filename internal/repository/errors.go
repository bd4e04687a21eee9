// Package repository defines error types that are reused across multiple
// repositories.  Handlers translate them into HTTP status codes: the
// not-found errors into 404, ErrEmailExists and ErrConflict into 409.
package repository

import (
	"errors"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql" // registers the "mysql" dialect
)

var (
	ErrPlaceNotFound   = errors.New("place not found")
	ErrCheapieNotFound = errors.New("cheapie not found")
	ErrUserNotFound    = errors.New("user not found")

	// ErrEmailExists is returned when a user insert or update collides with
	// the unique email index.
	ErrEmailExists = errors.New("email already exists")

	// ErrConflict is returned when a place identifier is already taken.
	ErrConflict = errors.New("conflict")
)

// dialect builds MySQL flavoured SQL; statements are executed through the
// shared *sql.DB so the pool stays the single process-wide store handle.
var dialect = goqu.Dialect("mysql")

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns user input into a LIKE pattern matching it anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
