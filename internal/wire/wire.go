package wire

import (
	"context"
	"net/http"
	"time"

	"hirehub/internal/adaptor"
	"hirehub/internal/data/repository"
	"hirehub/internal/usecase"
	"hirehub/pkg/mailer"
	"hirehub/pkg/metrics"
	"hirehub/pkg/middleware"
	"hirehub/pkg/social"
	"hirehub/pkg/token"
	"hirehub/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Infra is the set of external resources the application runs on.
type Infra struct {
	Repo      *repository.Repository
	Mailer    mailer.Sender
	Redis     *redis.Client
	Providers map[string]social.Provider
	Metrics   *metrics.Metrics
}

// App holds the wired application.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router. ctx bounds background
// work owned by the router, such as the in-memory limiter's sweeper.
func Wiring(ctx context.Context, infra Infra, config *utils.Config, logger *zap.Logger) *App {
	tokens := token.NewManager(config.JWT)

	service := usecase.NewService(usecase.Deps{
		Repo:      infra.Repo,
		Tokens:    tokens,
		Mailer:    infra.Mailer,
		Providers: infra.Providers,
		Metrics:   infra.Metrics,
		Config:    config,
		Log:       logger,
	})
	handler := adaptor.NewHandler(service, config, logger)

	limiter := middleware.NewLimiter(ctx, config.RateLimit, infra.Redis, logger)

	router := setupRouter(handler, routeDeps{
		repo:    infra.Repo,
		tokens:  tokens,
		limiter: limiter,
		metrics: infra.Metrics,
	}, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

type routeDeps struct {
	repo    *repository.Repository
	tokens  *token.Manager
	limiter middleware.Limiter
	metrics *metrics.Metrics
}

func setupRouter(handler *adaptor.Handler, deps routeDeps, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	if config.App.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger(logger, deps.metrics))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))

	authed := middleware.Auth(deps.tokens, logger)
	throttled := middleware.RateLimit(deps.limiter, config.RateLimit, logger)

	wireAuth(r, handler, authed, throttled)
	wireUser(r, handler, authed, middleware.Admin(deps.repo.User, logger))

	r.Get("/health", health(deps.repo, logger))
	r.Method(http.MethodGet, "/metrics", deps.metrics.Handler())

	return r
}

func health(repo *repository.Repository, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := repo.Ping(ctx); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			utils.ResponseServiceUnavailable(w, "Database unavailable")
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}
