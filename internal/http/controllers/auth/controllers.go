// Package auth contiene los controllers del ciclo de credenciales.
package auth

import (
	"net/http"
	"time"

	"github.com/sanikant20/videoTube-Server/internal/http/helpers"
	svc "github.com/sanikant20/videoTube-Server/internal/http/services/auth"
)

// CookieSettings gobierna las cookies httpOnly de sesión.
type CookieSettings struct {
	Domain     string
	SameSite   string
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Controllers agrupa los controllers del dominio auth.
type Controllers struct {
	Register *RegisterController
	Login    *LoginController
	Refresh  *RefreshController
	Logout   *LogoutController
	Profile  *ProfileController
}

// Deps agrupa los services que consumen los controllers.
type Deps struct {
	Register svc.RegisterService
	Login    svc.LoginService
	Refresh  svc.RefreshService
	Logout   svc.LogoutService
	Profile  svc.ProfileService
	Cookies  CookieSettings
}

func NewControllers(d Deps) *Controllers {
	return &Controllers{
		Register: &RegisterController{service: d.Register},
		Login:    &LoginController{service: d.Login, cookies: d.Cookies},
		Refresh:  &RefreshController{service: d.Refresh, cookies: d.Cookies},
		Logout:   &LogoutController{service: d.Logout, cookies: d.Cookies},
		Profile:  &ProfileController{service: d.Profile},
	}
}

// setSessionCookies deja el par de tokens en cookies httpOnly.
func setSessionCookies(w http.ResponseWriter, ck CookieSettings, access, refresh string) {
	http.SetCookie(w, helpers.BuildCookie(helpers.AccessCookie, access, ck.Domain, ck.SameSite, ck.Secure, ck.AccessTTL))
	http.SetCookie(w, helpers.BuildCookie(helpers.RefreshCookie, refresh, ck.Domain, ck.SameSite, ck.Secure, ck.RefreshTTL))
}

// clearSessionCookies borra ambas cookies de sesión.
func clearSessionCookies(w http.ResponseWriter, ck CookieSettings) {
	http.SetCookie(w, helpers.BuildDeletionCookie(helpers.AccessCookie, ck.Domain, ck.SameSite, ck.Secure))
	http.SetCookie(w, helpers.BuildDeletionCookie(helpers.RefreshCookie, ck.Domain, ck.SameSite, ck.Secure))
}
