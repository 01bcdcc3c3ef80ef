// Package jwt emite y valida los tokens de acceso y de refresh del servicio.
package jwt

import (
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

// Issuer firma pares access/refresh con secretos HMAC independientes.
// Los secretos y TTLs llegan por configuración explícita en el constructor:
// nunca se leen del ambiente en tiempo de request.
type Issuer struct {
	Iss           string
	accessSecret  []byte
	refreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// AccessClaims son las claims del access token: identidad mínima pública.
// El token es stateless y nunca se persiste.
type AccessClaims struct {
	jwtv5.RegisteredClaims
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// RefreshClaims llevan solo el id de la identidad.
type RefreshClaims struct {
	jwtv5.RegisteredClaims
}

// Config agrupa los parámetros del Issuer.
type Config struct {
	Iss           string
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func NewIssuer(cfg Config) *Issuer {
	iss := cfg.Iss
	if iss == "" {
		iss = "videotube"
	}
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = 168 * time.Hour
	}
	return &Issuer{
		Iss:           iss,
		accessSecret:  cfg.AccessSecret,
		refreshSecret: cfg.RefreshSecret,
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	}
}

// IssueAccess emite un access token HS256 con las claims públicas del usuario.
func (i *Issuer) IssueAccess(u *core.User) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(i.AccessTTL)

	claims := AccessClaims{
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    i.Iss,
			Subject:   u.ID,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
		},
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
	}

	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := tk.SignedString(i.accessSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// IssueRefresh emite un refresh token HS256 con el id de identidad como único
// contenido. El valor crudo viaja al cliente; en DB solo se guarda su hash.
func (i *Issuer) IssueRefresh(userID string) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(i.RefreshTTL)

	claims := RefreshClaims{
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    i.Iss,
			Subject:   userID,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
		},
	}

	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := tk.SignedString(i.refreshSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
