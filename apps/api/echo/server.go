package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/business"
	"github.com/arisha-glich/class-gecko-backend/core/camp"
	"github.com/arisha-glich/class-gecko-backend/core/class"
	"github.com/arisha-glich/class-gecko-backend/core/commission"
	"github.com/arisha-glich/class-gecko-backend/core/customfield"
	"github.com/arisha-glich/class-gecko-backend/core/discount"
	"github.com/arisha-glich/class-gecko-backend/core/dropin"
	"github.com/arisha-glich/class-gecko-backend/core/enrollment"
	"github.com/arisha-glich/class-gecko-backend/core/family"
	"github.com/arisha-glich/class-gecko-backend/core/holiday"
	"github.com/arisha-glich/class-gecko-backend/core/lesson"
	"github.com/arisha-glich/class-gecko-backend/core/location"
	"github.com/arisha-glich/class-gecko-backend/core/organization"
	"github.com/arisha-glich/class-gecko-backend/core/regfee"
	"github.com/arisha-glich/class-gecko-backend/core/student"
	"github.com/arisha-glich/class-gecko-backend/core/term"
	"github.com/arisha-glich/class-gecko-backend/core/trial"
	"github.com/arisha-glich/class-gecko-backend/core/user"
	"github.com/arisha-glich/class-gecko-backend/core/waitlist"
	"github.com/arisha-glich/class-gecko-backend/core/waiver"
)

type (
	Services struct {
		User            *user.Service
		Organization    *organization.Service
		Business        *business.Service
		Commission      *commission.Service
		Family          *family.Service
		Student         *student.Service
		Location        *location.Service
		Term            *term.Service
		Class           *class.Service
		Lesson          *lesson.Service
		Enrollment      *enrollment.Service
		Trial           *trial.Service
		Waitlist        *waitlist.Service
		Camp            *camp.Service
		Holiday         *holiday.Service
		Waiver          *waiver.Service
		CustomField     *customfield.Service
		RegistrationFee *regfee.Service
		Discount        *discount.Service
		DropInClass     *dropin.ClassService
		DropInLesson    *dropin.LessonService
		DropInBooking   *dropin.BookingService
	}

	Options struct {
		Conf           *core.Config
		Logger         core.Logger
		Zap            *zap.Logger
		Validate       *validator.Validate
		Translator     ut.Translator
		DisableReqLogs bool
		Services       Services
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		metrics  *metrics
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	s.metrics = newMetrics(registry, conf.MetricsName)

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(requestIDMiddleware(s.opts.Zap))
	if !s.opts.DisableReqLogs {
		s.app.Use(requestLoggerMiddleware())
	}
	s.app.Use(s.metrics.middleware)
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     conf.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug && !conf.TestMode
	s.app.HideBanner = true

	s.app.GET("/", home)
	s.app.GET("/health", health)
	s.app.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	deps := handlerDeps{validate: s.opts.Validate, translator: s.opts.Translator}
	svcs := s.opts.Services
	authed := router{app: s.app, middleware: []echo.MiddlewareFunc{sessionMiddleware(conf.Session, svcs.User)}}
	admin := authed.with(adminMiddleware)

	registerCampAPI(authed, deps, svcs.Camp)
	registerClassAPI(authed, deps, svcs.Class)
	registerTermAPI(authed, deps, svcs.Term)
	registerLessonAPI(authed, deps, svcs.Lesson)
	registerEnrollmentAPI(authed, deps, svcs.Enrollment)
	registerTrialAPI(authed, deps, svcs.Trial)
	registerWaitlistAPI(authed, deps, svcs.Waitlist)
	registerStudentAPI(authed, deps, svcs.Student)
	registerFamilyAPI(authed, deps, svcs.Family)
	registerDiscountAPI(authed, deps, svcs.Discount)
	registerCatalogAPI(authed, deps, svcs)
	registerOrganizationAPI(authed, deps, svcs.Organization)
	registerDropInAPI(authed, deps, svcs)
	registerBusinessAPI(admin, deps, svcs.Business)
	registerCommissionAPI(admin, deps, svcs.Commission)
}

func (s *server) Start() {
	if err := s.app.Start(s.opts.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *server) Stop(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *server) Errors() <-chan error {
	return s.errors
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already shutting down
	}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Class Gecko API!")
}

func health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// router mounts each resource group on its own prefix behind the same middleware, so that
// unknown paths outside of the resource groups stay 404s.
type router struct {
	app        *echo.Echo
	middleware []echo.MiddlewareFunc
}

func (r router) with(m ...echo.MiddlewareFunc) router {
	mw := make([]echo.MiddlewareFunc, 0, len(r.middleware)+len(m))
	return router{app: r.app, middleware: append(append(mw, r.middleware...), m...)}
}

func (r router) Group(prefix string, m ...echo.MiddlewareFunc) *echo.Group {
	return r.app.Group(prefix, r.with(m...).middleware...)
}
