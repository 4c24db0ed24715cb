package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gatherhub/community/internal/ability"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

// User is the acting user as established by the authentication layer:
// identity, role flag and plan. Every workflow call receives it explicitly,
// there is no ambient current-user state.
type User struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Plan    string `json:"plan"`
	IsAdmin bool   `json:"is_admin"`
}

// Subject converts the authenticated user into the evaluator's view of it.
func (u *User) Subject() ability.Subject {
	return ability.Subject{
		ID:    u.ID,
		Admin: u.IsAdmin,
		Plan:  ability.ParsePlan(u.Plan),
	}
}

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)
