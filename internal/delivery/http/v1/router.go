package v1

import (
	"net/http"

	"devconnector-backend/config"
	"devconnector-backend/internal/delivery/http/middleware"
	"devconnector-backend/internal/delivery/http/response"
	"devconnector-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	AuthUC    domain.AuthUsecase
	UserUC    domain.UserUsecase
	ProfileUC domain.ProfileUsecase
	GithubUC  domain.GithubUsecase
	Tokens    domain.TokenService
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	registry := prometheus.NewRegistry()
	httpMetrics := middleware.NewHTTPMetrics(registry)

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(httpMetrics.Handler())
	r.Use(middleware.ErrorHandler())

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	loginLimiter := middleware.RateLimit(middleware.LoginRateLimitConfig(
		deps.Config.RateLimitLoginThreshold,
		deps.Config.RateLimitWindowSeconds,
	))

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))
	{
		NewAuthHandler(api, protected, deps.AuthUC, loginLimiter)
		NewUserHandler(api, deps.UserUC)
		NewProfileHandler(api, protected, deps.ProfileUC)
		NewGithubHandler(api, deps.GithubUC)
	}

	return r
}
