package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/hbomb79/Tubely/internal/api/util"
	"github.com/hbomb79/Tubely/internal/api/videos"
	"github.com/hbomb79/Tubely/internal/ingest"
	"github.com/hbomb79/Tubely/pkg/logger"
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

	AuthProvider interface {
		videos.AuthProvider
		GetJwtVerifierMiddleware() echo.MiddlewareFunc
	}

	// The RestGateway is a thin-wrapper around the Echo HTTP router. It's sole responsibility
	// is to create the routes Tubely exposes, serve the locally hosted assets and to
	// enforce authentication middleware where applicable.
	RestGateway struct {
		config          *RestConfig
		ec              *echo.Echo
		videoController controller
	}
)

// NewRestGateway constructs the Echo router and populates it with all the
// routes defined by the various controllers. The assetsRoot is served
// statically under '/assets'.
func NewRestGateway(
	config *RestConfig,
	authProvider AuthProvider,
	ingestService videos.IngestService,
	store videos.Store,
	limits ingest.Config,
	assetsRoot string,
) *RestGateway {
	ec := echo.New()
	ec.OnAddRouteHandler = func(host string, route echo.Route, handler echo.HandlerFunc, middleware []echo.MiddlewareFunc) {
		log.Emit(logger.DEBUG, "Registered new route %s %s\n", route.Method, route.Path)
	}
	ec.HidePort = true
	ec.HideBanner = true
	ec.HTTPErrorHandler = util.GetHTTPErrorHandler(ec.DefaultHTTPErrorHandler)

	validate := validator.New()
	gateway := &RestGateway{
		config:          config,
		ec:              ec,
		videoController: videos.New(validate, authProvider, ingestService, store, limits),
	}

	ec.Use(middleware.Logger())
	ec.Use(middleware.Recover())
	ec.Pre(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		Skipper: func(ec echo.Context) bool { return strings.HasPrefix(ec.Request().URL.Path, "/assets/") },
	}))

	ec.Static("/assets", assetsRoot)
	ec.GET("/api/v1/health/", func(ec echo.Context) error {
		return ec.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	videoGroup := ec.Group("/api/v1/videos", authProvider.GetJwtVerifierMiddleware())
	gateway.videoController.SetRoutes(videoGroup)

	return gateway
}

func (gateway *RestGateway) Run(parentCtx context.Context) error {
	ctx, ctxCancel := context.WithCancelCause(parentCtx)
	wg := &sync.WaitGroup{}

	// Start echo router
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Emit(logger.NEW, "Starting HTTP server on %s\n", gateway.config.HostAddr)
		if err := gateway.ec.Start(gateway.config.HostAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ctxCancel(err)
		}
	}()

	// Start thread to listen for context cancellation
	go func(ec *echo.Echo) {
		<-ctx.Done()
		ec.Close()
	}(gateway.ec)

	wg.Wait()

	// Return cancellation cause if any, otherwise nil as parent context
	// cancellation is not an error case we should report.
	if cause := context.Cause(ctx); cause != ctx.Err() {
		return cause
	}

	return nil
}

// ServeHTTP allows the gateway to be exercised directly (e.g. by httptest)
// without binding to a network address.
func (gateway *RestGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gateway.ec.ServeHTTP(w, r)
}
