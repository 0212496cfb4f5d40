package app

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// HTTPService runs the API server as a managed service.
type HTTPService struct {
	name   string
	server *http.Server
}

// NewHTTPService wraps an http handler in a Service.
func NewHTTPService(name, addr string, handler http.Handler) *HTTPService {
	return &HTTPService{
		name: name,
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *HTTPService) Name() string {
	return s.name
}

// Start blocks serving requests until Stop shuts the listener down.
func (s *HTTPService) Start(ctx context.Context) error {
	_ = ctx
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *HTTPService) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
