// Package session signs employee sessions into HS256 bearer tokens.
package session

import (
	"errors"
	"fmt"

	"tallerpro/internal/domain/entities"
	"tallerpro/internal/usecase/interfaces"

	"github.com/golang-jwt/jwt/v4"
)

const issuer = "tallerpro"

var ErrMissingSecret = errors.New("session secret is empty")

type claims struct {
	jwt.RegisteredClaims
	Name  string        `json:"name"`
	Email string        `json:"email,omitempty"`
	Role  entities.Role `json:"role"`
}

// JWTIssuer implements interfaces.ISessionIssuer with a shared secret.
type JWTIssuer struct {
	secret []byte
}

var _ interfaces.ISessionIssuer = (*JWTIssuer)(nil)

func NewJWTIssuer(secret string) (*JWTIssuer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &JWTIssuer{secret: []byte(secret)}, nil
}

func (j *JWTIssuer) Issue(s entities.Session) (string, error) {
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Subject:   s.UserID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(s.LoginTime),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
		Name:  s.Name,
		Email: s.Email,
		Role:  s.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(j.secret)
}

// Parse verifies the signature, issuer and expiry of a token.
func (j *JWTIssuer) Parse(token string) (entities.Session, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return entities.Session{}, fmt.Errorf("parse session token: %w", err)
	}
	if !c.VerifyIssuer(issuer, true) {
		return entities.Session{}, errors.New("parse session token: unexpected issuer")
	}

	s := entities.Session{
		ID:     c.ID,
		UserID: c.Subject,
		Name:   c.Name,
		Email:  c.Email,
		Role:   c.Role,
		Token:  token,
	}
	if c.IssuedAt != nil {
		s.LoginTime = c.IssuedAt.Time.UTC()
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time.UTC()
	}
	return s, nil
}
