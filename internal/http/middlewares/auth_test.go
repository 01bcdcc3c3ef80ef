package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtx "github.com/sanikant20/videoTube-Server/internal/jwt"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

func testIssuer() *jwtx.Issuer {
	return jwtx.NewIssuer(jwtx.Config{
		AccessSecret:  []byte("test-access-secret-0123456789abcdef00"),
		RefreshSecret: []byte("test-refresh-secret-0123456789abcdef0"),
		AccessTTL:     time.Minute,
	})
}

// userTable es un UserResolver de juguete: solo las cuentas listadas existen.
type userTable map[string]*core.User

func (u userTable) GetUserByID(_ context.Context, id string) (*core.User, error) {
	if user, ok := u[id]; ok {
		return user, nil
	}
	return nil, core.ErrNotFound
}

func knownUsers() userTable {
	return userTable{"user-1": {ID: "user-1", Username: "johndoe"}}
}

func issueAccess(t *testing.T, iss *jwtx.Issuer) string {
	t.Helper()
	raw, _, err := iss.IssueAccess(&core.User{ID: "user-1", Username: "johndoe"})
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

// echoUserID responde el user ID que el middleware dejó en el contexto.
func echoUserID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetUserID(r.Context())))
	})
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("respuesta no-JSON: %s", body)
	}
	return payload.Code
}

func TestRequireAuthWithBearerHeader(t *testing.T) {
	iss := testIssuer()
	h := RequireAuth(iss, knownUsers(), "header")(echoUserID())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueAccess(t, iss))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if rec.Body.String() != "user-1" {
		t.Errorf("user id propagado = %q", rec.Body.String())
	}
}

func TestRequireAuthWithCookie(t *testing.T) {
	iss := testIssuer()
	h := RequireAuth(iss, knownUsers(), "cookie")(echoUserID())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: issueAccess(t, iss)})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "user-1" {
		t.Fatalf("status = %d, body = %q", rec.Code, rec.Body.String())
	}
}

func TestRequireAuthCookieSourceFallsBackToHeader(t *testing.T) {
	iss := testIssuer()
	h := RequireAuth(iss, knownUsers(), "cookie")(echoUserID())

	// Sin cookie pero con Bearer: en modo cookie el header sigue sirviendo.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueAccess(t, iss))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRequireAuthHeaderSourceIgnoresCookie(t *testing.T) {
	iss := testIssuer()
	h := RequireAuth(iss, knownUsers(), "header")(echoUserID())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: issueAccess(t, iss)})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, la cookie no es fuente válida en modo header", rec.Code)
	}
	if code := errorCode(t, rec.Body.Bytes()); code != "AUTH_REQUIRED" {
		t.Errorf("code = %q", code)
	}
}

func TestRequireAuthMissingToken(t *testing.T) {
	h := RequireAuth(testIssuer(), knownUsers(), "cookie")(echoUserID())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Error("falta el header WWW-Authenticate")
	}
	if code := errorCode(t, rec.Body.Bytes()); code != "AUTH_REQUIRED" {
		t.Errorf("code = %q", code)
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	iss := testIssuer()
	iss.AccessTTL = -time.Minute
	raw := issueAccess(t, iss)
	iss.AccessTTL = time.Minute

	h := RequireAuth(iss, knownUsers(), "header")(echoUserID())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if code := errorCode(t, rec.Body.Bytes()); code != "TOKEN_EXPIRED" {
		t.Errorf("code = %q, esperaba TOKEN_EXPIRED", code)
	}
}

func TestRequireAuthGarbageToken(t *testing.T) {
	h := RequireAuth(testIssuer(), knownUsers(), "header")(echoUserID())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if code := errorCode(t, rec.Body.Bytes()); code != "TOKEN_INVALID" {
		t.Errorf("code = %q, esperaba TOKEN_INVALID", code)
	}
}

func TestRequireAuthDeletedAccount(t *testing.T) {
	// Token con firma y expiración válidas, pero la cuenta ya no existe:
	// el subject no puede atravesar la API protegida.
	iss := testIssuer()
	h := RequireAuth(iss, userTable{}, "header")(echoUserID())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueAccess(t, iss))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if code := errorCode(t, rec.Body.Bytes()); code != "USER_NOT_FOUND" {
		t.Errorf("code = %q, esperaba USER_NOT_FOUND", code)
	}
}

func TestRequireAuthStoreUnavailable(t *testing.T) {
	iss := testIssuer()
	down := resolverFunc(func(context.Context, string) (*core.User, error) {
		return nil, core.ErrUnavailable
	})
	h := RequireAuth(iss, down, "header")(echoUserID())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueAccess(t, iss))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
	if code := errorCode(t, rec.Body.Bytes()); code != "SERVICE_UNAVAILABLE" {
		t.Errorf("code = %q", code)
	}
}

type resolverFunc func(ctx context.Context, id string) (*core.User, error)

func (f resolverFunc) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	return f(ctx, id)
}

func TestOptionalAuth(t *testing.T) {
	iss := testIssuer()
	h := OptionalAuth(iss, knownUsers(), "header")(echoUserID())

	// Sin token: pasa igual, sin identidad.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "" {
		t.Errorf("sin token: status=%d body=%q", rec.Code, rec.Body.String())
	}

	// Con token válido: identidad presente.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueAccess(t, iss))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Body.String() != "user-1" {
		t.Errorf("con token: body=%q", rec.Body.String())
	}
}

func TestOptionalAuthDeletedAccountIsAnonymous(t *testing.T) {
	iss := testIssuer()
	h := OptionalAuth(iss, userTable{}, "header")(echoUserID())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueAccess(t, iss))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "" {
		t.Errorf("status=%d body=%q, esperaba pasar como anónimo", rec.Code, rec.Body.String())
	}
}
