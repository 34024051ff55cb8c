// Package server accepts TCP connections and answers exactly one protocol
// line per connection.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slog"
	"linekeeper/internal/command"
	"linekeeper/internal/connlog"
)

const DefaultAddress = ":3077"

// Dispatcher executes one protocol line.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg string) command.Result
}

// Saver persists the record store after every connection.
type Saver interface {
	Save(ctx context.Context) error
}

type Server struct {
	addr        string
	dispatcher  Dispatcher
	saver       Saver
	connLog     connlog.Logger
	log         *slog.Logger
	idleTimeout time.Duration

	mu       sync.Mutex
	listener net.Listener
	closing  atomic.Bool
	handlers sync.WaitGroup
}

// Option - функциональная опция сервера.
type Option func(*Server)

// WithConnectionLog sets the sink receiving one entry per handled connection.
func WithConnectionLog(l connlog.Logger) Option {
	return func(s *Server) {
		s.connLog = l
	}
}

// WithIdleTimeout bounds how long one connection may take. Zero means no limit.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.idleTimeout = d
	}
}

func New(addr string, dispatcher Dispatcher, saver Saver, log *slog.Logger, opts ...Option) *Server {
	if addr == "" {
		addr = DefaultAddress
	}
	s := &Server{
		addr:       addr,
		dispatcher: dispatcher,
		saver:      saver,
		connLog:    connlog.Discard{},
		log:        log.With("component", "tcp_server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListenAndServe binds the configured address and serves until Shutdown.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln and handles each in its own goroutine.
// It returns nil after Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	if s.closing.Load() {
		ln.Close()
		return nil
	}

	s.log.Info("TCP server started, waiting for connections", "address", ln.Addr().String())

	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.closing.Load() {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			s.log.Error("accept error", "error", err)
			continue
		}

		s.handlers.Add(1)
		go func() {
			defer s.handlers.Done()
			s.handleConnection(conn)
		}()
	}
}

// Addr returns the bound address, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Shutdown stops accepting and waits for in-flight connections or ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closing.Store(true)

	s.mu.Lock()
	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.handlers.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("TCP server stopped")
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
