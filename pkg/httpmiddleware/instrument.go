package httpmiddleware

import (
	"net/http"
	"strconv"

	"github.com/go-faster/sdk/app"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument returns a middleware that wraps handlers with otelhttp tracing
// and records a request counter keyed by method, route, and status class.
func Instrument(serviceName string, m *app.Telemetry) Middleware {
	meter := m.MeterProvider().Meter(serviceName)
	requests, err := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Count of handled HTTP requests"),
	)
	if err != nil {
		requests = nil
	}

	otelMW := otelhttp.NewMiddleware(serviceName,
		otelhttp.WithTracerProvider(m.TracerProvider()),
		otelhttp.WithMeterProvider(m.MeterProvider()),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			if r.Pattern != "" {
				return r.Pattern
			}
			return r.Method + " " + r.URL.Path
		}),
	)

	return func(next http.Handler) http.Handler {
		counted := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			if requests == nil {
				return
			}
			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			requests.Add(r.Context(), 1, metric.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("http.status_class", strconv.Itoa(status/100)+"xx"),
			))
		})
		return otelMW(counted)
	}
}
