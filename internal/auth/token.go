package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/apperrors"
)

// sessionClaims is the payload of a session token issued by the external
// auth provider: the subject (user ID) plus email. Everything else about the
// user lives in the local profile record.
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier checks session tokens issued by the external auth provider.
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier builds a Verifier for tokens signed with the shared provider
// secret.
func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// Verify parses and validates a session token, returning the provider's user
// ID and email. Any failure is ErrUnauthenticated; the caller learns nothing
// more about why.
func (v *Verifier) Verify(token string) (uuid.UUID, string, error) {
	if token == "" {
		return uuid.Nil, "", apperrors.ErrUnauthenticated
	}

	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthenticated
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer))
	if err != nil {
		return uuid.Nil, "", apperrors.ErrUnauthenticated
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, "", apperrors.ErrUnauthenticated
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", apperrors.ErrUnauthenticated
	}

	return userID, claims.Email, nil
}

// ExtractBearer pulls the token out of an Authorization header.
func ExtractBearer(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.ErrUnauthenticated
	}
	return parts[1], nil
}
