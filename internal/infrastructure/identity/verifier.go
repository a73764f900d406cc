// Package identity implements the boundary to the external identity
// provider. The provider performs the actual login and hands the service a
// signed assertion; the verifier here only checks the signature and
// extracts the verified (identity_id, email, name) triple. Credential
// exchange itself is out of scope by design.
package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/phoenix-council/election-api/internal/core/domain"
)

// AssertionVerifier validates HS256-signed identity assertions using a
// secret shared with the identity provider.
type AssertionVerifier struct {
	secret []byte
}

func NewAssertionVerifier(secret string) *AssertionVerifier {
	return &AssertionVerifier{secret: []byte(secret)}
}

// Verify parses the assertion and returns the verified identity triple.
// Failures are opaque: callers learn only that verification failed.
func (v *AssertionVerifier) Verify(_ context.Context, credential string) (*domain.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("verify identity assertion: %w", domain.ErrInvalidCredentials)
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	if sub == "" || email == "" {
		return nil, fmt.Errorf("verify identity assertion: %w", domain.ErrInvalidCredentials)
	}

	return &domain.Identity{IdentityID: sub, Email: email, Name: name}, nil
}
