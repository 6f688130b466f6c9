// Package health provides liveness and readiness probe handlers.
//
// [LivenessHandler] always answers OK while the process runs.
// [ReadinessHandler] runs named [Checks] concurrently under a shared timeout
// and answers 503 when any of them fails:
//
//	r.Get("/healthz", health.LivenessHandler())
//	r.Get("/readyz", health.ReadinessHandler(health.Checks{
//	    "tables": tablesCheck,
//	}))
//
// Responses are plain text ("OK" or "Service Unavailable") unless the client
// sends Accept: application/json or ?format=json, in which case each check is
// reported:
//
//	{"status": "unhealthy", "checks": {"tables": {"status": "unhealthy", "error": "..."}}}
package health
