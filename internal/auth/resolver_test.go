package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/models"
)

const (
	testSecret = "test-secret"
	testIssuer = "shulebase-auth"
)

type fakeProfiles struct {
	profiles map[uuid.UUID]*models.Profile
}

func (f *fakeProfiles) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return profile, nil
}

func signToken(t *testing.T, secret, issuer string, subject uuid.UUID, email string) string {
	t.Helper()
	claims := sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestResolveHappyPath(t *testing.T) {
	userID := uuid.New()
	schoolID := uuid.New()
	resolver := NewResolver(NewVerifier(testSecret, testIssuer), &fakeProfiles{
		profiles: map[uuid.UUID]*models.Profile{
			userID: {UserID: userID, SchoolID: &schoolID, Email: "t@school.test", RoleName: "teacher"},
		},
	})

	identity, err := resolver.Resolve(context.Background(), signToken(t, testSecret, testIssuer, userID, "t@school.test"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if identity.UserID != userID {
		t.Errorf("UserID = %s, want %s", identity.UserID, userID)
	}
	if identity.Role != models.RoleTeacher {
		t.Errorf("Role = %s, want teacher", identity.Role)
	}
	if identity.SchoolID == nil || *identity.SchoolID != schoolID {
		t.Errorf("SchoolID = %v, want %s", identity.SchoolID, schoolID)
	}
}

func TestResolveBadToken(t *testing.T) {
	userID := uuid.New()
	resolver := NewResolver(NewVerifier(testSecret, testIssuer), &fakeProfiles{
		profiles: map[uuid.UUID]*models.Profile{},
	})

	cases := map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"wrong secret": signToken(t, "other-secret", testIssuer, userID, ""),
		"wrong issuer": signToken(t, testSecret, "someone-else", userID, ""),
	}
	for name, token := range cases {
		if _, err := resolver.Resolve(context.Background(), token); !errors.Is(err, apperrors.ErrUnauthenticated) {
			t.Errorf("%s: error = %v, want ErrUnauthenticated", name, err)
		}
	}
}

// A verified token with no profile behind it is a distinct state from a bad
// token: the user is logged in but not registered here.
func TestResolveMissingProfile(t *testing.T) {
	resolver := NewResolver(NewVerifier(testSecret, testIssuer), &fakeProfiles{
		profiles: map[uuid.UUID]*models.Profile{},
	})

	_, err := resolver.Resolve(context.Background(), signToken(t, testSecret, testIssuer, uuid.New(), ""))
	if !errors.Is(err, apperrors.ErrProfileNotFound) {
		t.Fatalf("error = %v, want ErrProfileNotFound", err)
	}
	if errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatal("missing profile must not be reported as unauthenticated")
	}
}

func TestResolveUnknownRole(t *testing.T) {
	userID := uuid.New()
	schoolID := uuid.New()
	resolver := NewResolver(NewVerifier(testSecret, testIssuer), &fakeProfiles{
		profiles: map[uuid.UUID]*models.Profile{
			userID: {UserID: userID, SchoolID: &schoolID, RoleName: "owner"},
		},
	})

	identity, err := resolver.Resolve(context.Background(), signToken(t, testSecret, testIssuer, userID, ""))
	if !errors.Is(err, apperrors.ErrUnknownRole) {
		t.Fatalf("error = %v, want ErrUnknownRole", err)
	}
	if identity != nil {
		t.Fatal("no identity may be returned for an unrecognized role")
	}
}

func TestResolveSchoolBoundRoleWithoutSchool(t *testing.T) {
	userID := uuid.New()
	resolver := NewResolver(NewVerifier(testSecret, testIssuer), &fakeProfiles{
		profiles: map[uuid.UUID]*models.Profile{
			userID: {UserID: userID, RoleName: "teacher"},
		},
	})

	if _, err := resolver.Resolve(context.Background(), signToken(t, testSecret, testIssuer, userID, "")); !errors.Is(err, apperrors.ErrProfileNotFound) {
		t.Fatalf("error = %v, want ErrProfileNotFound", err)
	}
}

func TestResolveSuperAdminWithoutSchool(t *testing.T) {
	userID := uuid.New()
	resolver := NewResolver(NewVerifier(testSecret, testIssuer), &fakeProfiles{
		profiles: map[uuid.UUID]*models.Profile{
			userID: {UserID: userID, RoleName: "super_admin"},
		},
	})

	identity, err := resolver.Resolve(context.Background(), signToken(t, testSecret, testIssuer, userID, ""))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if identity.SchoolID != nil {
		t.Errorf("SchoolID = %v, want nil", identity.SchoolID)
	}
}

func TestExtractBearer(t *testing.T) {
	if token, err := ExtractBearer("Bearer abc123"); err != nil || token != "abc123" {
		t.Errorf("ExtractBearer = (%q, %v)", token, err)
	}
	if token, err := ExtractBearer("bearer abc123"); err != nil || token != "abc123" {
		t.Errorf("ExtractBearer lowercase = (%q, %v)", token, err)
	}
	for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc123", "abc123"} {
		if _, err := ExtractBearer(header); !errors.Is(err, apperrors.ErrUnauthenticated) {
			t.Errorf("ExtractBearer(%q) error = %v, want ErrUnauthenticated", header, err)
		}
	}
}
