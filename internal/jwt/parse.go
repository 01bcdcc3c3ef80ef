package jwt

import (
	"errors"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired: firma válida pero el token ya venció.
	ErrExpired = errors.New("token expired")
	// ErrInvalid: firma inválida, formato roto o claims inconsistentes.
	ErrInvalid = errors.New("token invalid")
)

// ParseAccess valida firma y expiración de un access token y devuelve sus
// claims. Solo acepta HS256.
func (i *Issuer) ParseAccess(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := i.parse(raw, claims, i.accessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseRefresh valida firma y expiración de un refresh token.
// No consulta el estado almacenado: eso es trabajo de la rotación.
func (i *Issuer) ParseRefresh(raw string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := i.parse(raw, claims, i.refreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (i *Issuer) parse(raw string, claims jwtv5.Claims, secret []byte) error {
	tk, err := jwtv5.ParseWithClaims(raw, claims,
		func(t *jwtv5.Token) (any, error) { return secret, nil },
		jwtv5.WithValidMethods([]string{"HS256"}),
		jwtv5.WithIssuer(i.Iss),
	)
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return ErrExpired
		}
		return ErrInvalid
	}
	if !tk.Valid {
		return ErrInvalid
	}
	return nil
}
