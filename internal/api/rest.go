package api

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hbomb79/Trawl/internal/api/downloads"
	"github.com/hbomb79/Trawl/internal/api/fetch"
	"github.com/hbomb79/Trawl/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var log = logger.Get("API")

type (
	RestConfig struct {
		HostAddr string `yaml:"host_address" env:"API_HOST_ADDR" env-default:"0.0.0.0:8080"`
	}

	controller interface {
		SetRoutes(*echo.Group)
	}

	// RestGateway is a thin wrapper around the Echo HTTP router. Its sole
	// responsibility is to create the routes exposed by the controllers
	// and manage the lifecycle of the underlying server.
	RestGateway struct {
		config              *RestConfig
		ec                  *echo.Echo
		fetchController     controller
		downloadsController controller
	}
)

// NewRestGateway constructs the Echo router and populates it with the
// routes defined by the fetch and downloads controllers.
func NewRestGateway(config *RestConfig, fetchService fetch.Service, downloadService downloads.Service) *RestGateway {
	ec := echo.New()
	ec.OnAddRouteHandler = func(host string, route echo.Route, handler echo.HandlerFunc, middleware []echo.MiddlewareFunc) {
		log.Emit(logger.DEBUG, "Registered new route %s %s\n", route.Method, route.Path)
	}
	ec.HidePort = true
	ec.HideBanner = true

	validate := validator.New()
	gateway := &RestGateway{
		config:              config,
		ec:                  ec,
		fetchController:     fetch.New(validate, fetchService),
		downloadsController: downloads.New(validate, downloadService),
	}

	ec.Use(middleware.Logger())
	ec.Use(middleware.Recover())

	root := ec.Group("")
	gateway.fetchController.SetRoutes(root)
	gateway.downloadsController.SetRoutes(root)

	return gateway
}

// Run starts the HTTP server and blocks until the context is cancelled,
// at which point the server is drained and shut down.
func (gateway *RestGateway) Run(ctx context.Context) error {
	ctx, ctxCancel := context.WithCancelCause(ctx)
	wg := &sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Emit(logger.NEW, "Starting HTTP server on %s\n", gateway.config.HostAddr)
		if err := gateway.ec.Start(gateway.config.HostAddr); err != nil {
			ctxCancel(err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		if err := gateway.ec.Shutdown(shutdownCtx); err != nil {
			log.Emit(logger.ERROR, "Failed to gracefully shutdown HTTP server: %v\n", err)
		}
	}()

	wg.Wait()
	if cause := context.Cause(ctx); cause != nil && cause != ctx.Err() {
		return cause
	}
	return nil
}
