// Package auth implements the identity resolver: mapping an authenticated
// request to a role-neutral principal (opaque id, email, display name, admin
// flag). Tokens are HS256 JWTs; the admin flag is derived from the
// configured allow-list at resolution time, never from the token itself.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/petreunite/go-pet-backend/internal/admin"
	"github.com/petreunite/go-pet-backend/internal/repo"
)

// ErrUnauthenticated indicates a missing, malformed, or expired credential.
var ErrUnauthenticated = errors.New("unauthenticated")

// Principal identifies an authenticated caller. IsAdmin is a derived
// property, re-evaluated on every request against the reloadable allow-list.
type Principal struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
}

// Resolver verifies bearer tokens and resolves them to principals backed by
// the user store. It also issues tokens for the demo identity flow; real
// deployments would terminate OAuth upstream and only use the verify path.
type Resolver struct {
	DB        *gorm.DB
	Secret    []byte
	TTL       time.Duration
	Issuer    string
	Allowlist *admin.Allowlist
}

// IssueToken upserts the principal for email and returns a signed JWT with
// sub/email/name claims.
func (r *Resolver) IssueToken(ctx context.Context, email, displayName string) (token string, p Principal, err error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", Principal{}, errors.New("email required")
	}
	u, err := repo.GetOrCreateUserByEmail(ctx, r.DB, email, displayName)
	if err != nil {
		return "", Principal{}, err
	}

	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"name":  u.DisplayName,
		"exp":   time.Now().Add(r.ttl()).Unix(),
		"iss":   r.issuer(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(r.Secret)
	if err != nil {
		return "", Principal{}, err
	}
	return signed, r.principal(u.ID, u.Email, u.DisplayName), nil
}

// Resolve verifies a bearer token and returns the caller's principal.
// It fails with ErrUnauthenticated for any credential problem and only
// returns other errors for store failures.
func (r *Resolver) Resolve(ctx context.Context, bearer string) (Principal, error) {
	bearer = strings.TrimSpace(bearer)
	if bearer == "" {
		return Principal{}, ErrUnauthenticated
	}

	tok, err := jwt.Parse(bearer, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return r.Secret, nil
	}, jwt.WithIssuer(r.issuer()), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return Principal{}, ErrUnauthenticated
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrUnauthenticated
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Principal{}, ErrUnauthenticated
	}

	// The user row is authoritative for email/name; tokens may be stale.
	u, err := repo.GetUser(ctx, r.DB, sub)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Principal{}, ErrUnauthenticated
		}
		return Principal{}, err
	}
	return r.principal(u.ID, u.Email, u.DisplayName), nil
}

func (r *Resolver) principal(id, email, name string) Principal {
	isAdmin := r.Allowlist != nil && r.Allowlist.Contains(email)
	return Principal{ID: id, Email: email, DisplayName: name, IsAdmin: isAdmin}
}

func (r *Resolver) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return 72 * time.Hour
}

func (r *Resolver) issuer() string {
	if r.Issuer != "" {
		return r.Issuer
	}
	return "go-pet-backend"
}
