package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/jprdgz/sakahan-api/internal/catalog"
	"github.com/jprdgz/sakahan-api/internal/database"
	"github.com/jprdgz/sakahan-api/internal/farmer"
	"github.com/jprdgz/sakahan-api/internal/field"
	"github.com/jprdgz/sakahan-api/internal/handler"
	"github.com/jprdgz/sakahan-api/internal/logger"
	"github.com/jprdgz/sakahan-api/internal/metrics"
	"github.com/jprdgz/sakahan-api/internal/recommend"
	"github.com/jprdgz/sakahan-api/internal/task"
	"github.com/jprdgz/sakahan-api/internal/weather"
	"github.com/jprdgz/sakahan-api/internal/yield"
)

// Services bundles everything the router needs.
type Services struct {
	Field     field.Service
	Task      task.Service
	Recommend recommend.Service
	Catalog   catalog.Service
	Yield     yield.Service
	Farmer    farmer.Service
	Weather   weather.Reader
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, svcs Services) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	fieldHandler := handler.NewFieldHandler(svcs.Field)
	taskHandler := handler.NewTaskHandler(svcs.Task)
	recommendHandler := handler.NewRecommendHandler(svcs.Recommend)
	catalogHandler := handler.NewCatalogHandler(svcs.Catalog)
	yieldHandler := handler.NewYieldHandler(svcs.Yield)
	farmerHandler := handler.NewFarmerHandler(svcs.Farmer)
	weatherHandler := handler.NewWeatherHandler(svcs.Weather)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Field routes
		r.Route("/fields", func(r chi.Router) {
			r.Post("/", fieldHandler.Create)
			r.Get("/", fieldHandler.ListActive)
			r.Get("/all", fieldHandler.ListAll)
			r.Get("/completed", fieldHandler.ListCompleted)

			r.Route("/{fieldID}", func(r chi.Router) {
				r.Get("/", fieldHandler.Get)
				r.Put("/", fieldHandler.Update)
				r.Delete("/", fieldHandler.Delete)
				r.Get("/recommendations", recommendHandler.Get)
				r.Post("/select-crop", recommendHandler.SelectCrop)
				r.Get("/yield", yieldHandler.FieldTotal)
			})
		})

		// Task routes
		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", taskHandler.Create)
			r.Get("/", taskHandler.List)
			r.Get("/{taskID}", taskHandler.Get)
			r.Post("/{taskID}/complete", taskHandler.Complete)
		})

		// Catalog routes
		r.Route("/crops", func(r chi.Router) {
			r.Get("/", catalogHandler.ListCrops)
			r.Get("/oversupply", catalogHandler.ListOversupplied)
			r.Post("/oversupply", catalogHandler.SetOversupply)
			r.Get("/{name}", catalogHandler.GetCrop)
		})

		// Farmer routes
		r.Route("/farmers", func(r chi.Router) {
			r.Post("/", farmerHandler.Register)
			r.Get("/active", farmerHandler.CountActive)
			r.Get("/{farmerID}", farmerHandler.Get)
		})

		r.Get("/weather/current", weatherHandler.Current)
		r.Get("/yield/trend", yieldHandler.Trend)
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
