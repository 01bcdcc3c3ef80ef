// Package router arma el árbol de rutas del servicio.
package router

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authctrl "github.com/sanikant20/videoTube-Server/internal/http/controllers/auth"
	channelctrl "github.com/sanikant20/videoTube-Server/internal/http/controllers/channel"
	contentctrl "github.com/sanikant20/videoTube-Server/internal/http/controllers/content"
	engagementctrl "github.com/sanikant20/videoTube-Server/internal/http/controllers/engagement"
	healthctrl "github.com/sanikant20/videoTube-Server/internal/http/controllers/health"
	httperrors "github.com/sanikant20/videoTube-Server/internal/http/errors"
	mw "github.com/sanikant20/videoTube-Server/internal/http/middlewares"
	jwtx "github.com/sanikant20/videoTube-Server/internal/jwt"
	"github.com/sanikant20/videoTube-Server/internal/rate"
)

// Deps contiene todo lo que el router necesita para armar el árbol.
type Deps struct {
	Issuer      *jwtx.Issuer
	Users       mw.UserResolver
	TokenSource string // "cookie" | "header"

	Auth       *authctrl.Controllers
	Videos     *contentctrl.VideoController
	Comments   *contentctrl.CommentController
	Tweets     *contentctrl.TweetController
	Engagement *engagementctrl.Controller
	Channel    *channelctrl.Controller
	Health     *healthctrl.Controller

	RateLimiter rate.Limiter // nil desactiva
	CORSOrigins []string
}

// New arma el router chi completo con middlewares globales.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	// Logging y metrics van adentro de chi (necesitan el route pattern).
	r.Use(
		mw.WithLogging(),
		mw.WithMetrics(),
	)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	r.Get("/healthz", d.Health.Live)
	r.Get("/readyz", d.Health.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	requireAuth := mw.RequireAuth(d.Issuer, d.Users, d.TokenSource)
	optionalAuth := mw.OptionalAuth(d.Issuer, d.Users, d.TokenSource)
	limited := mw.WithRateLimit(d.RateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		// Credenciales. Los endpoints sin sesión van rate-limiteados por IP.
		r.Route("/auth", func(r chi.Router) {
			r.With(limited).Post("/register", d.Auth.Register.Register)
			r.With(limited).Post("/login", d.Auth.Login.Login)
			r.With(limited).Post("/refresh", d.Auth.Refresh.Refresh)
			r.With(requireAuth).Post("/logout", d.Auth.Logout.Logout)
		})

		// Cuenta autenticada.
		r.Route("/users/me", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", d.Auth.Profile.Me)
			r.Patch("/", d.Auth.Profile.UpdateProfile)
			r.Post("/password", d.Auth.Profile.ChangePassword)
			r.Patch("/avatar", d.Auth.Profile.UpdateAvatar)
			r.Patch("/cover", d.Auth.Profile.UpdateCoverImage)
			r.Get("/watch-history", d.Channel.WatchHistory)
			r.Get("/liked-videos", d.Channel.LikedVideos)
		})

		// Perfil público de canal; con sesión agrega is_subscribed.
		r.With(optionalAuth).Get("/channels/{username}", d.Channel.Profile)

		// Videos.
		r.Route("/videos", func(r chi.Router) {
			r.With(optionalAuth).Get("/", d.Videos.ListByOwner)
			r.With(requireAuth).Post("/", d.Videos.Publish)

			r.Route("/{videoID}", func(r chi.Router) {
				r.With(optionalAuth).Get("/", d.Videos.Get)
				r.With(requireAuth).Patch("/", d.Videos.Update)
				r.With(requireAuth).Post("/toggle-publish", d.Videos.TogglePublish)
				r.With(requireAuth).Delete("/", d.Videos.Delete)

				r.Get("/comments", d.Comments.ListByVideo)
				r.With(requireAuth).Post("/comments", d.Comments.Create)
			})
		})

		// Comments fuera del scope del video (update/delete por ID propio).
		r.Route("/comments/{commentID}", func(r chi.Router) {
			r.Use(requireAuth)
			r.Patch("/", d.Comments.Update)
			r.Delete("/", d.Comments.Delete)
		})

		// Tweets.
		r.Route("/tweets", func(r chi.Router) {
			r.With(optionalAuth).Get("/", d.Tweets.ListByOwner)
			r.With(requireAuth).Post("/", d.Tweets.Create)
			r.Route("/{tweetID}", func(r chi.Router) {
				r.Use(requireAuth)
				r.Patch("/", d.Tweets.Update)
				r.Delete("/", d.Tweets.Delete)
			})
		})

		// Engagement: likes y suscripciones sobre cualquier target.
		r.Route("/engagements/{targetType}/{targetID}", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", d.Engagement.Status)
			r.Post("/toggle", d.Engagement.Toggle)
			r.Post("/reconcile", d.Engagement.Reconcile)
		})
	})

	// Request ID y CORS corren antes del router: el preflight de una ruta
	// inexistente también se responde.
	return mw.Chain(r,
		mw.WithRequestID(),
		mw.WithCORS(d.CORSOrigins),
	)
}
