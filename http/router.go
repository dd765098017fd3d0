package http

import (
	"net/http"

	"go.uber.org/zap"
)

// NewRouter mounts the API. Illustration endpoints are rate limited; the
// catalog, history and health endpoints are not. history may be nil.
func NewRouter(
	illustrations *IllustrationHandler,
	products *ProductHandler,
	history *HistoryHandler,
	limiter *RateLimiter,
	log *zap.Logger,
) http.Handler {
	limited := func(h http.HandlerFunc) http.Handler {
		if limiter == nil {
			return h
		}
		return RateLimitMiddleware(limiter, h)
	}

	mux := http.NewServeMux()
	mux.Handle("/illustrations", limited(illustrations.Illustrate))
	mux.Handle("/illustrations/compare", limited(illustrations.Compare))
	mux.Handle("/illustrations/report.pdf", limited(illustrations.ReportPDF))
	mux.Handle("/illustrations/report.csv", limited(illustrations.ReportCSV))
	mux.HandleFunc("/products", products.List)
	if history != nil {
		mux.HandleFunc("/illustrations/recent", history.Recent)
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok\n"))
	})

	return withMiddleware(mux, log)
}

// withMiddleware wraps h so that recovered panics still reach the access log.
func withMiddleware(h http.Handler, log *zap.Logger) http.Handler {
	h = RecoverMiddleware(log, h)
	h = AccessLogMiddleware(log, h)
	return RequestIDMiddleware(h)
}
