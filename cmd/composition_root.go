package cmd

import (
	"log/slog"
	"net/http"
	"time"

	dispatchhttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/geo"
	"dispatch/internal/adapters/out/geocache"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	defaultGeocoderTimeout = 5 * time.Second
	defaultGeocodeCacheTTL = 24 * time.Hour
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	geocoder   ports.Geocoder
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	geocoder, err := buildGeocoder(config, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		geocoder:   geocoder,
		logger:     logger,
	}, nil
}

// buildGeocoder wires the HTTP geocoding client and, when a Redis address is
// configured, the read-through cache in front of it.
func buildGeocoder(config Config, logger *slog.Logger) (ports.Geocoder, error) {
	session := &http.Client{
		Timeout: durationOrDefault(config.GeocoderTimeout, defaultGeocoderTimeout),
	}

	client, err := geo.NewClient(config.GeocoderBaseURL, config.GeocoderAPIKey, session)
	if err != nil {
		return nil, err
	}

	if config.RedisAddr == "" {
		return client, nil
	}

	redisClient := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
	ttl := durationOrDefault(config.GeocodeCacheTTL, defaultGeocodeCacheTTL)

	return geocache.NewCachedGeocoder(redisClient, client, ttl, logger)
}

func durationOrDefault(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.geocoder)
}

func (c *CompositionRoot) CreateTakeOrderCommandHandler() commands.TakeOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTakeOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatsQueryHandler() queries.GetOrderStatsQueryHandler {
	return queries.NewGetOrderStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *dispatchhttp.Server {
	return dispatchhttp.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateTakeOrderCommandHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetOrderStatsQueryHandler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
