package metrics

import (
	"net/http"
	"time"
)

// Serve exposes /metrics and the health endpoints on addr. It blocks, so
// callers run it in a goroutine; an empty addr should be handled by the
// caller (endpoint disabled).
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/healthz", HealthHandler())
	mux.HandleFunc("/healthz/live", LivenessHandler())
	mux.HandleFunc("/healthz/ready", ReadyHandler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}
