package httpserver

import (
	"net/http"
	"time"

	"quorum/internal/platform/config"
)

// writeSlack lets a handler that hit the request timeout still write its
// 503 before the connection deadline closes the socket.
const writeSlack = 5 * time.Second

// New builds the listener for cfg. Write deadlines follow the request timeout
// enforced by the router.
func New(cfg config.Server, handler http.Handler) *http.Server {
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 15 * time.Second
	}
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       requestTimeout,
		WriteTimeout:      requestTimeout + writeSlack,
		IdleTimeout:       4 * requestTimeout,
	}
}
