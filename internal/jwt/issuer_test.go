package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

func testIssuer() *Issuer {
	return NewIssuer(Config{
		AccessSecret:  []byte("access-secret-entirely-for-tests-0123"),
		RefreshSecret: []byte("refresh-secret-entirely-for-tests-012"),
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
}

func testUser() *core.User {
	return &core.User{
		ID:       "user-1",
		Username: "johndoe",
		Email:    "john@example.com",
		FullName: "John Doe",
	}
}

func TestIssueAndParseAccess(t *testing.T) {
	iss := testIssuer()

	raw, exp, err := iss.IssueAccess(testUser())
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiración en el pasado: %v", exp)
	}

	claims, err := iss.ParseAccess(raw)
	if err != nil {
		t.Fatalf("ParseAccess: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("Subject = %q, esperaba user-1", claims.Subject)
	}
	if claims.Username != "johndoe" || claims.Email != "john@example.com" {
		t.Errorf("claims públicas incorrectas: %+v", claims)
	}
	if claims.Issuer != "videotube" {
		t.Errorf("Issuer = %q", claims.Issuer)
	}
}

func TestIssueAndParseRefresh(t *testing.T) {
	iss := testIssuer()

	raw, _, err := iss.IssueRefresh("user-7")
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}
	claims, err := iss.ParseRefresh(raw)
	if err != nil {
		t.Fatalf("ParseRefresh: %v", err)
	}
	if claims.Subject != "user-7" {
		t.Errorf("Subject = %q", claims.Subject)
	}
}

func TestParseRejectsCrossTokenUse(t *testing.T) {
	iss := testIssuer()

	// Un refresh nunca debe pasar como access (secretos independientes) y
	// viceversa.
	refresh, _, err := iss.IssueRefresh("user-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := iss.ParseAccess(refresh); !errors.Is(err, ErrInvalid) {
		t.Errorf("ParseAccess(refresh) = %v, esperaba ErrInvalid", err)
	}

	access, _, err := iss.IssueAccess(testUser())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := iss.ParseRefresh(access); !errors.Is(err, ErrInvalid) {
		t.Errorf("ParseRefresh(access) = %v, esperaba ErrInvalid", err)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	iss := testIssuer()
	other := NewIssuer(Config{
		AccessSecret:  []byte("otro-secreto-distinto-para-el-test-00"),
		RefreshSecret: []byte("otro-secreto-distinto-para-el-test-11"),
	})

	raw, _, err := iss.IssueAccess(testUser())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.ParseAccess(raw); !errors.Is(err, ErrInvalid) {
		t.Errorf("ParseAccess con otro secreto = %v, esperaba ErrInvalid", err)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	iss := NewIssuer(Config{
		AccessSecret:  []byte("access-secret-entirely-for-tests-0123"),
		RefreshSecret: []byte("refresh-secret-entirely-for-tests-012"),
	})
	// TTL negativo no pasa por los defaults de NewIssuer, así que se fuerza
	// directamente para emitir un token ya vencido.
	iss.AccessTTL = -time.Minute
	iss.RefreshTTL = -time.Minute

	access, _, err := iss.IssueAccess(testUser())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := iss.ParseAccess(access); !errors.Is(err, ErrExpired) {
		t.Errorf("ParseAccess(vencido) = %v, esperaba ErrExpired", err)
	}

	refresh, _, err := iss.IssueRefresh("user-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := iss.ParseRefresh(refresh); !errors.Is(err, ErrExpired) {
		t.Errorf("ParseRefresh(vencido) = %v, esperaba ErrExpired", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	iss := testIssuer()
	for _, raw := range []string{"", "abc", "a.b.c"} {
		if _, err := iss.ParseAccess(raw); !errors.Is(err, ErrInvalid) {
			t.Errorf("ParseAccess(%q) = %v, esperaba ErrInvalid", raw, err)
		}
	}
}
