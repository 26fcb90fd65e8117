// Package api is the HTTP surface of the server. It carries credentials in
// cookies, runs the authentication and authorization gates, and renders
// every failure through one error mapper.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/JokeryEU/shoplistapp-server/internal/logging"
	"github.com/JokeryEU/shoplistapp-server/internal/server/services"
	"github.com/go-playground/validator/v10"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

type HTTPServer struct {
	address       string
	logger        logging.Logger
	users         *services.UserService
	lists         *services.ListService
	secureCookies bool
	validate      *validator.Validate
}

// NewHTTPServer wires the services into a server listening on address.
// secureCookies turns on Secure and SameSite=None for credential cookies.
func NewHTTPServer(address string, l logging.Logger, us *services.UserService, ls *services.ListService, secureCookies bool) *HTTPServer {
	return &HTTPServer{
		address:       address,
		logger:        l.With("module", "http_server"),
		users:         us,
		lists:         ls,
		secureCookies: secureCookies,
		validate:      newValidator(),
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
