package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTRoundTrip(t *testing.T) {
	profileID := uuid.New()
	subject := Subject{
		ID:        uuid.New(),
		Email:     "operator@example.com",
		Name:      "Operator",
		ProfileID: &profileID,
	}

	token, err := GenerateJWT("secret", subject, time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT("secret", token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != subject.ID || claims.Email != subject.Email || claims.IsAdmin {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.ProfileID == nil || *claims.ProfileID != profileID {
		t.Fatalf("profile id = %v, want %s", claims.ProfileID, profileID)
	}

	id := claims.Identity()
	if id.ID != subject.ID || id.ProfileID == nil || *id.ProfileID != profileID {
		t.Fatalf("identity = %+v", id)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("secret-a", Subject{ID: uuid.New()}, time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT("secret-b", token); err == nil {
		t.Fatal("token signed with a different secret was accepted")
	}
}

func TestJWTExpiredIsDistinguishable(t *testing.T) {
	token, err := GenerateJWT("secret", Subject{ID: uuid.New()}, time.Nanosecond)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, err = ParseJWT("secret", token)
	if err == nil {
		t.Fatal("expired token was accepted")
	}
	if !IsExpired(err) {
		t.Fatalf("IsExpired(%v) = false, want true", err)
	}
}

func TestJWTGarbageToken(t *testing.T) {
	if _, err := ParseJWT("secret", "not.a.token"); err == nil {
		t.Fatal("garbage token was accepted")
	}
	if IsExpired(nil) {
		t.Fatal("IsExpired(nil) = true")
	}
}
