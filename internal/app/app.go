package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Indrajitpadhiyar/Bagify/config"
	"github.com/Indrajitpadhiyar/Bagify/internal/controller"
	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
	circuitbreaker "github.com/Indrajitpadhiyar/Bagify/internal/infrastructure/circuit-breaker"
	"github.com/Indrajitpadhiyar/Bagify/internal/infrastructure/database/mongodb"
	"github.com/Indrajitpadhiyar/Bagify/internal/infrastructure/message-queue/kafka"
	"github.com/Indrajitpadhiyar/Bagify/internal/infrastructure/tracing"
	localmiddleware "github.com/Indrajitpadhiyar/Bagify/internal/middleware"
	"github.com/Indrajitpadhiyar/Bagify/internal/notification"
	"github.com/Indrajitpadhiyar/Bagify/internal/repository"
	"github.com/Indrajitpadhiyar/Bagify/internal/service"
	"github.com/Indrajitpadhiyar/Bagify/pkg/response"
	"github.com/Indrajitpadhiyar/Bagify/pkg/utils"
	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	purgeInterval      = time.Hour
	resetTokenInterval = 15 * time.Minute
)

type App struct {
	DB     *mongo.Database
	Config *config.Config
	Server *echo.Echo

	metricsServer *echo.Echo
	traceProvider *sdktrace.TracerProvider
	scheduler     gocron.Scheduler
	hub           *notification.Hub
	kafkaReader   *kafkago.Reader
	kafkaProducer *kafkago.Writer
	cancel        context.CancelFunc
}

// SetupLogger installs the global zerolog logger. Development gets a
// human readable console writer.
func SetupLogger(cfg *config.Config) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = logger
}

// Init wires every component. It must be called before Start.
func (app *App) Init() error {
	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		return err
	}
	app.traceProvider = traceProvider
	tracer := traceProvider.Tracer(tracing.ServiceName)

	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel

	if err := mongodb.EnsureIndexes(ctx, app.DB); err != nil {
		return fmt.Errorf("ensuring indexes: %w", err)
	}

	app.hub = notification.NewHub()

	trx := repository.CreateNewTransactionManager(app.DB)
	productRepo := repository.CreateNewProductRepository(app.DB)
	orderRepo := repository.CreateNewOrderRepository(app.DB)
	userRepo := repository.CreateNewUserRepository(app.DB)
	bannerRepo := repository.CreateNewBannerRepository(app.DB)
	eventRepo := repository.CreateNewEventRepository(app.DB)

	var publisher service.EventPublisher
	var consumer service.EventConsumer
	if app.Config.KafkaEnabled() {
		app.kafkaProducer = kafka.CreateKafkaProducer(app.Config)
		app.kafkaReader = kafka.CreateKafkaReader(app.Config)

		cb := circuitbreaker.CreateCircuitBreaker("order-events")
		publisher = service.CreateKafkaEventPublisher(app.kafkaProducer, cb)
		consumer = service.CreateKafkaEventConsumer(app.kafkaReader, app.hub)
	} else {
		log.Info().Str("component", "App.Init").Msg("no broker configured, order events go straight to the websocket hub")
		publisher = service.CreateHubEventPublisher(app.hub)
	}

	relay := service.CreateEventRelay(eventRepo, publisher, *app.Config)
	productSvc := service.CreateProductService(trx, productRepo)
	orderSvc := service.CreateOrderService(trx, orderRepo, productRepo, userRepo, eventRepo, relay)
	userSvc := service.CreateUserService(userRepo, productRepo, *app.Config)
	bannerSvc := service.CreateBannerService(bannerRepo)

	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewRequestValidator()
	e.HTTPErrorHandler = response.HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// span creation and naming
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	// Used empty string so that metrics are not prefixed with the service name
	e.Use(echoprometheus.NewMiddleware(""))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     app.Config.AllowedOrigins,
		AllowCredentials: true,
	}))
	e.Use(localmiddleware.Logger)

	g := e.Group("/api/v1")
	g.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogMethod:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Ctx(c.Request().Context()).Info().
				Str("method", v.Method).
				Str("URI", v.URI).
				Int("status", v.Status).
				Int64("latency", v.Latency.Microseconds()).
				Str("remote IP", v.RemoteIP).
				Msg("Request")

			return nil
		},
	}))

	guards := controller.Guards{
		IsLoggedIn: localmiddleware.Authenticate(app.Config.JWTConfig.Secret, userSvc),
		Admin:      localmiddleware.AuthorizeRoles(domain.RoleAdmin),
	}

	controller.CreateProductController(g, productSvc, guards)
	controller.CreateOrderController(g, orderSvc, guards)
	controller.CreateUserController(g, userSvc, guards, app.Config)
	controller.CreateBannerController(g, bannerSvc, guards)
	controller.CreateNotificationController(g, app.hub, app.Config.AllowedOrigins)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "pong", nil)
	})

	app.metricsServer = echo.New()
	app.metricsServer.HideBanner = true
	app.metricsServer.GET("/metrics", echoprometheus.NewHandler())

	app.scheduler, err = gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = app.scheduler.NewJob(
		gocron.DurationJob(app.Config.OutboxConfig.RelayInterval),
		gocron.NewTask(relay.Trigger),
	)
	if err != nil {
		return err
	}

	_, err = app.scheduler.NewJob(
		gocron.DurationJob(purgeInterval),
		gocron.NewTask(relay.PurgeDeliveredEvents, ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	_, err = app.scheduler.NewJob(
		gocron.DurationJob(resetTokenInterval),
		gocron.NewTask(userSvc.ClearExpiredResetTokens, ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	go relay.Run(ctx)
	if consumer != nil {
		go consumer.ConsumeEvent(ctx)
	}

	// pick up events left pending by a previous run
	relay.Trigger()

	app.Server = e

	return nil
}

// Start serves the API and blocks until the server stops.
func (app *App) Start() error {
	go func() {
		if err := app.metricsServer.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	app.scheduler.Start()

	log.Info().Str("component", "App.Start").Str("port", app.Config.ServicePort).Msg("starting server")
	if err := app.Server.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error

	if app.cancel != nil {
		app.cancel()
	}
	if app.scheduler != nil {
		errs = append(errs, app.scheduler.Shutdown())
	}
	if app.Server != nil {
		errs = append(errs, app.Server.Shutdown(ctx))
	}
	if app.metricsServer != nil {
		errs = append(errs, app.metricsServer.Shutdown(ctx))
	}
	if app.hub != nil {
		app.hub.Close()
	}
	if app.kafkaReader != nil {
		errs = append(errs, app.kafkaReader.Close())
	}
	if app.kafkaProducer != nil {
		errs = append(errs, app.kafkaProducer.Close())
	}
	if app.traceProvider != nil {
		errs = append(errs, app.traceProvider.Shutdown(ctx))
	}

	return errors.Join(errs...)
}
