// Package logger builds log/slog loggers from a small env-driven config and
// enriches records with values carried by the context.
//
// Create a logger:
//
//	log, err := logger.New(os.Stderr, logger.Config{Level: "debug", Format: "json"})
//
// Context extractors add request-scoped attributes on every call:
//
//	requestID := func(ctx context.Context) (slog.Attr, bool) {
//		if id := middleware.GetReqID(ctx); id != "" {
//			return slog.String("request_id", id), true
//		}
//		return slog.Attr{}, false
//	}
//	log, err := logger.New(os.Stderr, cfg, requestID)
//
// NewNope returns a logger that discards everything, for use as a default.
package logger
