package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	"salesdash/internal/config"
	"salesdash/internal/dataprocessing"
	apierrors "salesdash/internal/errors"
	"salesdash/internal/exporter"
	"salesdash/internal/infrastructure"
	"salesdash/internal/middleware"
	"salesdash/internal/predict"
	"salesdash/internal/services"
	"salesdash/internal/store"
	httphandlers "salesdash/internal/transport/http"
	"salesdash/pkg/contracts"
)

// shutdownGrace is how long Stop waits when no timeout is configured.
const shutdownGrace = 10 * time.Second

// backend is the record store the dashboard reads from.
type backend interface {
	dataprocessing.RowReader
	services.Pinger
}

// Application wires configuration, the record store, the model and the HTTP
// surface together.
type Application struct {
	Config        *config.Config
	Logger        *slog.Logger
	Router        *chi.Mux
	Server        *http.Server
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.SalesMetrics

	store     backend
	sheets    *store.SheetsStore
	predictor *predict.Adapter

	errorHandler *apierrors.ErrorHandler
	validator    *middleware.Validator

	dashboardService  *services.DashboardService
	recordService     *services.RecordService
	predictionService *services.PredictionService
	healthService     *services.HealthService

	listener net.Listener
	ctx      context.Context
	cancel   context.CancelFunc
}

// Option customises application construction.
type Option func(*options)

type options struct {
	sheetsOptions []option.ClientOption
	listener      net.Listener
}

// WithSheetsOptions passes client options through to the Sheets service,
// typically an endpoint and HTTP client for a fake server.
func WithSheetsOptions(opts ...option.ClientOption) Option {
	return func(o *options) {
		o.sheetsOptions = append(o.sheetsOptions, opts...)
	}
}

// WithListener serves on an existing listener instead of the configured port.
func WithListener(l net.Listener) Option {
	return func(o *options) {
		o.listener = l
	}
}

// NewApplication loads configuration from the environment and builds the
// application.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(context.Background(), cfg, logger)
}

// New builds an application from an already validated config.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	providers, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateSalesMetrics(providers.Meter)
	if err != nil {
		_ = providers.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	appCtx, cancel := context.WithCancel(context.Background())
	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: providers,
		Metrics:       metrics,
		listener:      o.listener,
		ctx:           appCtx,
		cancel:        cancel,
	}

	if err := app.connect(ctx, o.sheetsOptions); err != nil {
		cancel()
		_ = providers.Shutdown(context.Background())
		return nil, err
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// connect opens the record store and loads the model concurrently.
func (a *Application) connect(ctx context.Context, sheetsOptions []option.ClientOption) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		switch a.Config.Dataset.Source {
		case config.SourceFile:
			src, err := store.NewFileSource(a.Config.Dataset.FilePath, a.Config.Dataset.SheetName, a.Logger, a.Metrics)
			if err != nil {
				return err
			}
			a.store = src
		default:
			s, err := store.NewSheetsStore(gctx, a.Config.Store, a.Logger, a.Metrics, sheetsOptions...)
			if err != nil {
				return err
			}
			a.store = s
			a.sheets = s
		}
		return nil
	})

	g.Go(func() error {
		if a.Config.Predictor.ModelPath == "" {
			a.Logger.Warn("no model configured, prediction endpoints disabled")
			return nil
		}
		model, err := predict.LoadModel(a.Config.Predictor.ModelPath)
		if err != nil {
			return fmt.Errorf("failed to load model: %w", err)
		}
		a.predictor = predict.NewAdapter(model, a.Logger, a.Metrics)
		a.Logger.Info("model loaded",
			slog.String("model", a.predictor.ModelName()),
			slog.Int("features", len(a.predictor.FeatureNames())))
		return nil
	})

	if err := g.Wait(); err != nil {
		if a.sheets != nil {
			_ = a.sheets.Close()
		}
		return err
	}
	return nil
}

func (a *Application) initializeServices() {
	a.errorHandler = apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Level == "debug")
	a.validator = middleware.NewValidator(a.Logger)

	loader := dataprocessing.NewLoader(a.store.Backend(), a.store, a.Logger, a.Metrics)
	a.dashboardService = services.NewDashboardService(loader, a.Logger, a.Metrics)

	// A nil interface, not a typed nil, keeps the services' guards working.
	var recordStore services.RecordStore
	if a.sheets != nil {
		recordStore = a.sheets
	}
	a.recordService = services.NewRecordService(recordStore, a.Logger)

	var predictor services.Predictor
	var modelName string
	if a.predictor != nil {
		predictor = a.predictor
		modelName = a.predictor.ModelName()
	}
	a.predictionService = services.NewPredictionService(predictor, a.Logger)

	a.healthService = services.NewHealthService(contracts.Version, a.store, modelName,
		a.Config.Store.ConnectTimeout, a.Logger)
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StripSlashes)

	r.NotFound(a.errorHandler.NotFound)
	r.MethodNotAllowed(a.errorHandler.MethodNotAllowed)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics, a.Logger).Handler)
		r.Use(middleware.StructuredLogger(a.Logger))
		r.Use(middleware.Recoverer(a.errorHandler))
		r.Use(middleware.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(middleware.CORS(middleware.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
				Logger:         a.Logger,
			}))
		}

		if rl := a.Config.Security.RateLimit; rl.Enabled {
			r.Use(middleware.NewRateLimiter(rl.RPS, rl.Burst, a.errorHandler, a.Logger).Handler)
		}

		r.Route("/api", a.setupAPIRoutes)
	})

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Use(middleware.Timeout(a.Config.Server.RequestTimeout))
	r.Use(middleware.Compress(5))

	health := httphandlers.NewHealthHandler(a.healthService, a.Logger)
	r.Mount("/health", health.Routes())
	r.Get("/version", health.Version)

	dashboard := httphandlers.NewDashboardHandler(a.dashboardService,
		exporter.NewSalesExporter(true, a.Logger), a.Logger, a.errorHandler)
	r.Mount("/dashboard", dashboard.Routes())

	predictHandler := httphandlers.NewPredictHandler(a.predictionService, a.validator, a.Logger, a.errorHandler)
	r.With(middleware.ContentTypeValidator(a.errorHandler, "application/json")).
		Mount("/predict", predictHandler.Routes())

	// Row-level CRUD only exists against the live sheet.
	if a.sheets != nil {
		records := httphandlers.NewRecordsHandler(a.recordService, a.validator, a.Logger, a.errorHandler)
		r.With(middleware.ContentTypeValidator(a.errorHandler, "application/json")).
			Mount("/records", records.Routes())
	}
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         ":" + strconv.Itoa(a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return a.ctx },
	}
}

// Start serves HTTP in the background. A serve failure cancels the
// application context.
func (a *Application) Start() error {
	a.Logger.Info("starting sales dashboard",
		slog.String("version", contracts.GetFullVersionString()),
		slog.String("addr", a.Server.Addr),
		slog.String("source", a.store.Backend()),
		slog.Bool("records_api", a.sheets != nil),
		slog.Bool("predictor", a.predictor != nil))

	go func() {
		var err error
		if a.listener != nil {
			err = a.Server.Serve(a.listener)
		} else {
			err = a.Server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			a.Logger.Error("server error", slog.String("error", err.Error()))
			a.cancel()
		}
	}()

	return nil
}

// Stop shuts the server down and releases the store and telemetry.
func (a *Application) Stop() error {
	a.Logger.Info("shutting down sales dashboard")
	a.cancel()

	grace := a.Config.Server.ShutdownTimeout
	if grace <= 0 {
		grace = shutdownGrace
	}
	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown: %w", err))
	}

	if a.sheets != nil {
		if err := a.sheets.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store close: %w", err))
		}
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		for _, err := range errs {
			a.Logger.Error("shutdown error", slog.String("error", err.Error()))
		}
		return errs[0]
	}

	a.Logger.Info("sales dashboard stopped")
	return infrastructure.CloseLogFile()
}

// Run starts the server and blocks until SIGINT, SIGTERM or a serve failure.
func (a *Application) Run() error {
	if err := a.Start(); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		a.Logger.Info("received signal", slog.String("signal", sig.String()))
	case <-a.ctx.Done():
	}

	return a.Stop()
}
