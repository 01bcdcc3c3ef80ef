// videotube es el server HTTP del backend.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	rdb "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/sanikant20/videoTube-Server/internal/cache"
	"github.com/sanikant20/videoTube-Server/internal/config"
	authctrl "github.com/sanikant20/videoTube-Server/internal/http/controllers/auth"
	channelctrl "github.com/sanikant20/videoTube-Server/internal/http/controllers/channel"
	contentctrl "github.com/sanikant20/videoTube-Server/internal/http/controllers/content"
	engagementctrl "github.com/sanikant20/videoTube-Server/internal/http/controllers/engagement"
	healthctrl "github.com/sanikant20/videoTube-Server/internal/http/controllers/health"
	"github.com/sanikant20/videoTube-Server/internal/http/router"
	authsvc "github.com/sanikant20/videoTube-Server/internal/http/services/auth"
	channelsvc "github.com/sanikant20/videoTube-Server/internal/http/services/channel"
	contentsvc "github.com/sanikant20/videoTube-Server/internal/http/services/content"
	engagementsvc "github.com/sanikant20/videoTube-Server/internal/http/services/engagement"
	jwtx "github.com/sanikant20/videoTube-Server/internal/jwt"
	"github.com/sanikant20/videoTube-Server/internal/media"
	"github.com/sanikant20/videoTube-Server/internal/observability/logger"
	"github.com/sanikant20/videoTube-Server/internal/observability/metrics"
	"github.com/sanikant20/videoTube-Server/internal/rate"
	"github.com/sanikant20/videoTube-Server/internal/store/pg"
)

func main() {
	configPath := flag.String("config", "configs/config.example.yaml", "Path al YAML de configuración")
	flag.Parse()

	// .env es opcional; en prod las vars vienen del ambiente.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "videotube",
	})
	defer func() { _ = logger.Sync() }()
	lg := logger.L().With(logger.Component("main"))

	if err := metrics.Register(nil); err != nil {
		lg.Fatal("metrics register failed", logger.Err(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ------- Store -------
	store, err := pg.New(ctx, cfg.Storage.DSN, pg.Config{
		MaxConns:         cfg.Storage.Postgres.MaxOpenConns,
		MinConns:         cfg.Storage.Postgres.MinConns,
		ConnMaxLifetime:  cfg.ConnMaxLifetime(),
		StatementTimeout: cfg.StatementTimeout(),
	})
	if err != nil {
		lg.Fatal("postgres connect failed", logger.Err(err))
	}
	defer store.Close()

	// ------- Redis (rate limit) -------
	var limiter rate.Limiter
	if cfg.RateLimit.Enabled && cfg.Redis.Addr != "" {
		rc := rdb.NewClient(&rdb.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		defer rc.Close()
		limiter = rate.NewRedisLimiter(rc, "rl", cfg.RateLimit.Max, cfg.RateWindow())
		lg.Info("rate limiting enabled")
	}

	// ------- Cache -------
	cacheClient, err := cache.New(cache.Config{
		Backend:    cfg.Cache.Backend,
		Addr:       cfg.Redis.Addr,
		DB:         cfg.Redis.DB,
		Prefix:     "vt",
		DefaultTTL: cfg.CacheTTL(),
	})
	if err != nil {
		lg.Fatal("cache init failed", logger.Err(err))
	}
	defer cacheClient.Close()

	// ------- Media -------
	uploader, err := media.NewS3Uploader(ctx, media.S3Config{
		Endpoint:      cfg.Media.Endpoint,
		Region:        cfg.Media.Region,
		Bucket:        cfg.Media.Bucket,
		AccessKey:     cfg.Media.AccessKey,
		SecretKey:     cfg.Media.SecretKey,
		PublicBaseURL: cfg.Media.PublicBaseURL,
	})
	if err != nil {
		lg.Fatal("media uploader init failed", logger.Err(err))
	}

	// ------- JWT -------
	issuer := jwtx.NewIssuer(jwtx.Config{
		AccessSecret:  []byte(cfg.Auth.AccessSecret),
		RefreshSecret: []byte(cfg.Auth.RefreshSecret),
		AccessTTL:     cfg.AccessTTL(),
		RefreshTTL:    cfg.RefreshTTL(),
	})

	// ------- Services -------
	registerSvc := authsvc.NewRegisterService(authsvc.RegisterDeps{Repo: store})
	loginSvc := authsvc.NewLoginService(authsvc.LoginDeps{Repo: store, Issuer: issuer})
	refreshSvc := authsvc.NewRefreshService(authsvc.RefreshDeps{Repo: store, Issuer: issuer})
	logoutSvc := authsvc.NewLogoutService(authsvc.LogoutDeps{Repo: store})
	profileSvc := authsvc.NewProfileService(authsvc.ProfileDeps{Repo: store, Uploader: uploader})

	videoSvc := contentsvc.NewVideoService(contentsvc.VideoDeps{Repo: store, Uploader: uploader})
	commentSvc := contentsvc.NewCommentService(contentsvc.CommentDeps{Repo: store})
	tweetSvc := contentsvc.NewTweetService(contentsvc.TweetDeps{Repo: store})

	engagementSvc := engagementsvc.NewService(engagementsvc.Deps{Repo: store, Cache: cacheClient})
	channelSvc := channelsvc.NewService(channelsvc.Deps{Repo: store, Cache: cacheClient})

	// ------- Controllers + router -------
	cookies := authctrl.CookieSettings{
		Domain:     cfg.Auth.Cookie.Domain,
		SameSite:   cfg.Auth.Cookie.SameSite,
		Secure:     cfg.Auth.Cookie.Secure,
		AccessTTL:  cfg.AccessTTL(),
		RefreshTTL: cfg.RefreshTTL(),
	}
	handler := router.New(router.Deps{
		Issuer:      issuer,
		Users:       store,
		TokenSource: cfg.Auth.TokenSource,
		Auth: authctrl.NewControllers(authctrl.Deps{
			Register: registerSvc,
			Login:    loginSvc,
			Refresh:  refreshSvc,
			Logout:   logoutSvc,
			Profile:  profileSvc,
			Cookies:  cookies,
		}),
		Videos:      contentctrl.NewVideoController(videoSvc),
		Comments:    contentctrl.NewCommentController(commentSvc),
		Tweets:      contentctrl.NewTweetController(tweetSvc),
		Engagement:  engagementctrl.NewController(engagementSvc),
		Channel:     channelctrl.NewController(channelSvc),
		Health:      healthctrl.NewController(store, cacheClient),
		RateLimiter: limiter,
		CORSOrigins: cfg.Server.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("server listening", logger.Path(cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		lg.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		lg.Fatal("server failed", logger.Err(err))
	}
	lg.Info("bye")
}
