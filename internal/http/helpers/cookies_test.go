package helpers

import (
	"net/http"
	"testing"
	"time"
)

func TestParseSameSite(t *testing.T) {
	cases := map[string]http.SameSite{
		"lax":     http.SameSiteLaxMode,
		"Strict":  http.SameSiteStrictMode,
		" none ":  http.SameSiteNoneMode,
		"":        http.SameSiteLaxMode,
		"unknown": http.SameSiteLaxMode,
	}
	for in, want := range cases {
		if got := ParseSameSite(in); got != want {
			t.Errorf("ParseSameSite(%q) = %v, esperaba %v", in, got, want)
		}
	}
}

func TestBuildCookie(t *testing.T) {
	ck := BuildCookie(AccessCookie, "tok", "example.com", "strict", true, time.Hour)

	if ck.Name != AccessCookie || ck.Value != "tok" {
		t.Errorf("cookie = %+v", ck)
	}
	if !ck.HttpOnly || !ck.Secure {
		t.Error("la cookie de sesión tiene que ser httpOnly y secure")
	}
	if ck.Domain != "example.com" || ck.Path != "/" {
		t.Errorf("domain/path = %q/%q", ck.Domain, ck.Path)
	}
	if ck.MaxAge != 3600 {
		t.Errorf("MaxAge = %d", ck.MaxAge)
	}
	if ck.SameSite != http.SameSiteStrictMode {
		t.Errorf("SameSite = %v", ck.SameSite)
	}
}

func TestBuildCookieWithoutDomain(t *testing.T) {
	ck := BuildCookie(RefreshCookie, "tok", "  ", "lax", false, 0)
	if ck.Domain != "" {
		t.Errorf("Domain = %q, esperaba vacío", ck.Domain)
	}
	if ck.MaxAge != 0 {
		t.Errorf("MaxAge = %d sin TTL", ck.MaxAge)
	}
}

func TestBuildDeletionCookie(t *testing.T) {
	ck := BuildDeletionCookie(RefreshCookie, "", "lax", false)
	if ck.MaxAge != -1 {
		t.Errorf("MaxAge = %d, esperaba -1", ck.MaxAge)
	}
	if ck.Value != "" {
		t.Errorf("Value = %q", ck.Value)
	}
	if !ck.Expires.Before(time.Now()) {
		t.Error("Expires tiene que estar en el pasado")
	}
}
