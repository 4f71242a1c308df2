package httptransport

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/motorhall/showroom/internal/observability"
	"github.com/motorhall/showroom/internal/observability/logctx"
)

const headerRequestID = "X-Request-ID"

// ObservabilityMiddleware injects a request-scoped logger, generates and
// echoes X-Request-ID, and records request metrics with low-cardinality
// labels.
func ObservabilityMiddleware(base observability.Logger, tel observability.Observability) func(http.Handler) http.Handler {
	if tel == nil {
		tel = observability.NopObservability()
	}
	if base == nil {
		base = tel.Logger()
	}
	requests := tel.Metrics().Counter(observability.MHTTPRequests)
	durations := tel.Metrics().Histogram(observability.MHTTPRequestDuration)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := r.Header.Get(headerRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set(headerRequestID, rid)

			reqLogger := base.With(observability.F("request_id", rid))
			ctx := logctx.With(r.Context(), reqLogger)

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))

			statusLabel := http.StatusText(rec.status)
			requests.Add(1,
				observability.L("method", r.Method),
				observability.L("path", r.URL.Path),
				observability.L("status", statusLabel),
			)
			durations.Observe(time.Since(start).Seconds(),
				observability.L("method", r.Method),
				observability.L("path", r.URL.Path),
			)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
