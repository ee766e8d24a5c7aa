// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging and Metrics

Wrap handlers with logging and Prometheus instrumentation:

	mux.HandleFunc("GET /votes", middleware.Instrument(handler))

WithLogging logs request start (method, path, remote) and completion
(status, duration_ms). WithMetrics counts requests by route pattern and
status and observes latency:

	dotvote_http_requests_total{route, status}
	dotvote_http_request_duration_seconds{route}

MetricsHandler serves them at GET /metrics.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Admin-Key, X-Voter-Address.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

ParseJSONBody rejects unknown fields:

	var req models.SubmitBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Used for IP hashing on ballots.
*/
package middleware
