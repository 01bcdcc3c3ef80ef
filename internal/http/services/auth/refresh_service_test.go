package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	dto "github.com/sanikant20/videoTube-Server/internal/http/dto/auth"
	jwtx "github.com/sanikant20/videoTube-Server/internal/jwt"
	tokens "github.com/sanikant20/videoTube-Server/internal/security/token"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
	"github.com/sanikant20/videoTube-Server/internal/store/storetest"
)

func newTestIssuer() *jwtx.Issuer {
	return jwtx.NewIssuer(jwtx.Config{
		AccessSecret:  []byte("test-access-secret-0123456789abcdef00"),
		RefreshSecret: []byte("test-refresh-secret-0123456789abcdef0"),
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
}

// seedAccount registra y loguea un usuario; devuelve el par inicial.
func seedAccount(t *testing.T, repo *storetest.Fake, issuer *jwtx.Issuer) (*core.User, *dto.TokenPair) {
	t.Helper()
	ctx := context.Background()

	reg := NewRegisterService(RegisterDeps{Repo: repo})
	u, err := reg.Register(ctx, dto.RegisterRequest{
		Username: "johndoe",
		Email:    "john@example.com",
		FullName: "John Doe",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	login := NewLoginService(LoginDeps{Repo: repo, Issuer: issuer})
	res, err := login.Login(ctx, dto.LoginRequest{Login: "johndoe", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	user, err := repo.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	return user, &res.Tokens
}

func TestRefreshRotatesToken(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	issuer := newTestIssuer()
	user, pair := seedAccount(t, repo, issuer)

	svc := NewRefreshService(RefreshDeps{Repo: repo, Issuer: issuer})

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Error("la rotación tiene que emitir un refresh distinto")
	}
	if next.AccessToken == "" {
		t.Error("la rotación tiene que emitir un access nuevo")
	}

	// El hash almacenado ahora corresponde al refresh nuevo, no al viejo.
	stored, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.RefreshHash == nil {
		t.Fatal("hash de refresh ausente tras la rotación")
	}
	if *stored.RefreshHash != tokens.SHA256Base64URL(next.RefreshToken) {
		t.Error("el hash almacenado no corresponde al refresh nuevo")
	}
}

func TestRefreshReuseRevokesSession(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	issuer := newTestIssuer()
	user, pair := seedAccount(t, repo, issuer)

	svc := NewRefreshService(RefreshDeps{Repo: repo, Issuer: issuer})

	second, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("primera rotación: %v", err)
	}

	// Presentar de nuevo el refresh ya rotado: firma válida, pero no es el
	// vigente. Evidencia de replay.
	if _, err := svc.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrReuseDetected) {
		t.Fatalf("reuso = %v, esperaba ErrReuseDetected", err)
	}

	// La sesión entera quedó revocada: ni siquiera el refresh legítimo sirve.
	stored, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.RefreshHash != nil {
		t.Error("el hash tendría que haberse limpiado al detectar reuso")
	}
	if _, err := svc.Refresh(ctx, second.RefreshToken); !errors.Is(err, ErrRefreshInvalid) {
		t.Errorf("refresh legítimo tras revocación = %v, esperaba ErrRefreshInvalid", err)
	}
}

func TestRefreshAfterLogoutFails(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	issuer := newTestIssuer()
	user, pair := seedAccount(t, repo, issuer)

	logout := NewLogoutService(LogoutDeps{Repo: repo})
	if err := logout.Logout(ctx, user.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	// Logout es idempotente.
	if err := logout.Logout(ctx, user.ID); err != nil {
		t.Fatalf("segundo Logout: %v", err)
	}

	svc := NewRefreshService(RefreshDeps{Repo: repo, Issuer: issuer})
	if _, err := svc.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrRefreshInvalid) {
		t.Errorf("refresh tras logout = %v, esperaba ErrRefreshInvalid", err)
	}
}

func TestRefreshExpiredToken(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	issuer := newTestIssuer()
	user, _ := seedAccount(t, repo, issuer)

	// Un refresh vencido pero con firma válida.
	expiredIssuer := newTestIssuer()
	expiredIssuer.RefreshTTL = -time.Minute
	raw, _, err := expiredIssuer.IssueRefresh(user.ID)
	if err != nil {
		t.Fatal(err)
	}

	svc := NewRefreshService(RefreshDeps{Repo: repo, Issuer: issuer})
	if _, err := svc.Refresh(ctx, raw); !errors.Is(err, ErrRefreshExpired) {
		t.Errorf("refresh vencido = %v, esperaba ErrRefreshExpired", err)
	}
}

func TestRefreshGarbageToken(t *testing.T) {
	ctx := context.Background()
	repo := storetest.New()
	issuer := newTestIssuer()
	seedAccount(t, repo, issuer)

	svc := NewRefreshService(RefreshDeps{Repo: repo, Issuer: issuer})
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Refresh(ctx, raw); !errors.Is(err, ErrRefreshInvalid) {
			t.Errorf("Refresh(%q) = %v, esperaba ErrRefreshInvalid", raw, err)
		}
	}
}
