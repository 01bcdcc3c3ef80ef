package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	httperrors "github.com/sanikant20/videoTube-Server/internal/http/errors"
	jwtx "github.com/sanikant20/videoTube-Server/internal/jwt"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

// AccessCookieName es la cookie donde el cliente web guarda el access token.
const AccessCookieName = "accessToken"

// UserResolver resuelve el subject del token a una cuenta viva. Una firma
// válida no alcanza: si la cuenta fue borrada, el token no sirve.
type UserResolver interface {
	GetUserByID(ctx context.Context, id string) (*core.User, error)
}

// extractAccessToken busca el access token crudo según la fuente configurada.
// "cookie" prueba primero la cookie y cae al header; "header" solo Bearer.
func extractAccessToken(r *http.Request, tokenSource string) string {
	if tokenSource == "cookie" {
		if ck, err := r.Cookie(AccessCookieName); err == nil && ck.Value != "" {
			return ck.Value
		}
	}
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if ah != "" && strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		return strings.TrimSpace(ah[len("bearer "):])
	}
	return ""
}

// RequireAuth valida el access token, resuelve el subject contra el store y
// guarda el user ID en el contexto. Token ausente, vencido o inválido
// responde 401 con código distinguible; cuenta borrada responde 404.
func RequireAuth(issuer *jwtx.Issuer, users UserResolver, tokenSource string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractAccessToken(r, tokenSource)
			if raw == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="missing access token"`)
				httperrors.WriteError(w, httperrors.ErrAuthRequired)
				return
			}

			claims, err := issuer.ParseAccess(raw)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				if errors.Is(err, jwtx.ErrExpired) {
					httperrors.WriteError(w, httperrors.ErrTokenExpired)
					return
				}
				httperrors.WriteError(w, httperrors.ErrTokenInvalid)
				return
			}

			u, err := users.GetUserByID(r.Context(), claims.Subject)
			if err != nil {
				switch {
				case errors.Is(err, core.ErrNotFound):
					httperrors.WriteError(w, httperrors.ErrUserNotFound)
				case errors.Is(err, core.ErrUnavailable):
					httperrors.WriteError(w, httperrors.ErrServiceUnavailable)
				default:
					httperrors.WriteError(w, httperrors.ErrInternalServerError)
				}
				return
			}

			ctx := WithUserID(r.Context(), u.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth intenta validar el token pero no falla si falta, es inválido
// o la cuenta ya no existe. Para endpoints públicos que enriquecen la
// respuesta si hay sesión.
func OptionalAuth(issuer *jwtx.Issuer, users UserResolver, tokenSource string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractAccessToken(r, tokenSource)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := issuer.ParseAccess(raw)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			u, err := users.GetUserByID(r.Context(), claims.Subject)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithUserID(r.Context(), u.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
