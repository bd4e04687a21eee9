package utils // package utils provides session tokens, hashing and naming helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/cheapies/internal/model"
)

var ErrInvalidSession = errors.New("invalid session token")

// SessionClaims is what travels inside the signed session cookie.  The user
// id is carried as the standard subject claim.
type SessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// SessionUser is the user block exposed to the browser.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the object returned by the session endpoint.
type Session struct {
	User    SessionUser `json:"user"`
	Expires time.Time   `json:"expires"`
}

// ClaimsFromUser copies the identity of a freshly authenticated user into the
// token claims.  Timestamps are stamped by IssueSession.
func ClaimsFromUser(u model.UserProjection) SessionClaims {
	return SessionClaims{
		Email:            u.Email,
		Name:             u.Name,
		RegisteredClaims: jwt.RegisteredClaims{Subject: u.ID},
	}
}

// SessionFromClaims exposes the token identity to the client.
func SessionFromClaims(cl SessionClaims) Session {
	s := Session{User: SessionUser{ID: cl.Subject, Name: cl.Name, Email: cl.Email}}
	if cl.ExpiresAt != nil {
		s.Expires = cl.ExpiresAt.Time.UTC()
	}
	return s
}

// IssueSession stamps iat/exp on the claims and signs them with HS256.  The
// stamped claims are returned alongside the token string.
func IssueSession(secret string, cl SessionClaims, now time.Time, maxAge time.Duration) (string, SessionClaims, error) {
	now = now.UTC().Truncate(time.Second)
	cl.IssuedAt = jwt.NewNumericDate(now)
	cl.ExpiresAt = jwt.NewNumericDate(now.Add(maxAge))
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString([]byte(secret))
	if err != nil {
		return "", SessionClaims{}, err
	}
	return signed, cl, nil
}

// ParseSession validates signature and expiry and returns the claims.
func ParseSession(secret, raw string) (SessionClaims, error) {
	var cl SessionClaims
	tok, err := jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid || cl.Subject == "" {
		return SessionClaims{}, ErrInvalidSession
	}
	return cl, nil
}

// NeedsRenewal reports whether the token was issued more than updateAge ago.
func NeedsRenewal(cl SessionClaims, now time.Time, updateAge time.Duration) bool {
	if cl.IssuedAt == nil {
		return true
	}
	return now.Sub(cl.IssuedAt.Time) >= updateAge
}
