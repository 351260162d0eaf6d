//go:build wireinject
// +build wireinject

package di

import (
	"hostel/config"
	"hostel/infras/jwt"
	"hostel/infras/kafka"
	"hostel/infras/memstore"
	"hostel/infras/otel"
	"hostel/infras/postgres"
	"hostel/infras/redis"
	"hostel/internal/archive"
	"hostel/internal/bootstrap"
	"hostel/internal/events"
	"hostel/permissions"
	"hostel/shared/cache"
	"hostel/transport/http"
	"hostel/transport/http/middleware"
	"hostel/transport/http/router"

	bookingRepository "hostel/internal/domains/booking/repository"
	bookingService "hostel/internal/domains/booking/service"
	dashboardService "hostel/internal/domains/dashboard/service"
	rateService "hostel/internal/domains/rate/service"
	roomRepository "hostel/internal/domains/room/repository"
	roomService "hostel/internal/domains/room/service"

	bookingHandler "hostel/internal/handlers/booking"
	dashboardHandler "hostel/internal/handlers/dashboard"
	rateHandler "hostel/internal/handlers/rate"
	roomHandler "hostel/internal/handlers/room"

	"github.com/google/wire"
)

// Application bundles everything the entrypoint needs: the HTTP transport and
// the bootstrap that must run before it serves traffic.
type Application struct {
	HTTP      *http.HTTP
	Bootstrap *bootstrap.Bootstrap
}

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	memstore.New,
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	permissions.Get,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var sideEffects = wire.NewSet(
	archive.New,
	events.New,
	bootstrap.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var rateDomain = wire.NewSet(
	rateService.New,
)

var dashboardDomain = wire.NewSet(
	dashboardService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
	rateDomain,
	dashboardDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	roomHandler.New,
	rateHandler.New,
	dashboardHandler.New,
	router.New,
)

func InitializeService() *Application {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		sideEffects,
		domains,
		routing,
		http.New,
		wire.Struct(new(Application), "*"),
	)

	return &Application{}
}
