package bootstrap

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/postika/console/config"
	redisadapter "github.com/postika/console/internal/adapters/redis"
	"github.com/postika/console/internal/observability/statsd"
	"github.com/postika/console/internal/service"
	"github.com/postika/console/internal/upstream"
)

// ServiceDeps groups the dependencies required to build the service container.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds the constructed services and shared adapters.
type ServiceContainer struct {
	Auth        *service.AuthService
	Tenants     *service.TenantService
	Invitations *service.InvitationService

	Sessions *redisadapter.SessionStore
	Cache    *redisadapter.MembershipCache
	Metrics  *statsd.Client
	Redis    redis.UniversalClient
}

// NewServices wires the upstream client, Redis adapters, and services.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	api := upstream.NewClient(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
		Logger:  logger,
	})

	sessions := redisadapter.NewSessionStore(deps.RedisClient)
	cache := redisadapter.NewMembershipCache(deps.RedisClient)

	metrics, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Observability.Metrics.IsEnabled(),
		Address: cfg.Observability.Metrics.StatsdAddress,
		Prefix:  "postika.console",
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	return &ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			API:        api,
			Sessions:   sessions,
			SessionTTL: cfg.Session.TTL,
			Logger:     logger,
		}),
		Tenants: service.NewTenantService(service.TenantServiceOptions{
			API:           api,
			Cache:         cache,
			MembershipTTL: cfg.Cache.MembershipTTL,
			Logger:        logger,
		}),
		Invitations: service.NewInvitationService(service.InvitationServiceOptions{
			API:    api,
			Logger: logger,
		}),
		Sessions: sessions,
		Cache:    cache,
		Metrics:  metrics,
		Redis:    deps.RedisClient,
	}, nil
}
