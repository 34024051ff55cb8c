// Package server собирает процесс: хранилище, диспетчер, TCP и HTTP серверы.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
	"linekeeper/internal/app/server/api"
	"linekeeper/internal/command"
	"linekeeper/internal/config"
	"linekeeper/internal/connlog"
	"linekeeper/internal/infrastructure/storage"
	"linekeeper/internal/infrastructure/storage/file"
	"linekeeper/internal/infrastructure/storage/sqlite"
	tcp "linekeeper/internal/server"
	"linekeeper/internal/store"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg     *config.Config
	log     *slog.Logger
	docs    storage.Documents
	connLog *connlog.Sink
	store   *store.Store
	tcp     *tcp.Server
	http    *http.Server
}

// New opens the document backend and the connection log, loads the record
// store and builds both servers. Nothing listens until Run.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger, opts ...store.Option) (*App, error) {
	docs, err := openDocuments(cfg, log)
	if err != nil {
		return nil, err
	}

	connLog, err := connlog.OpenFile(cfg.Connection.LogPath, log)
	if err != nil {
		docs.Close()
		return nil, err
	}

	st := store.New(docs, log, opts...)
	if err := st.Load(ctx); err != nil {
		// Load already reseeded what it could not read; a failed write is not fatal.
		log.Warn("initial save failed", slog.String("error", err.Error()))
	}

	a := &App{
		cfg:     cfg,
		log:     log,
		docs:    docs,
		connLog: connLog,
		store:   st,
		tcp: tcp.New(cfg.Server.Address, command.NewDispatcher(st, log), st, log,
			tcp.WithConnectionLog(connLog),
			tcp.WithIdleTimeout(cfg.Server.IdleTimeout),
		),
	}

	if cfg.HTTP.Address != "" {
		a.http = &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           api.New(st, log),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return a, nil
}

func openDocuments(cfg *config.Config, log *slog.Logger) (storage.Documents, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		path := cfg.Storage.SQLitePath
		if !filepath.IsAbs(path) && cfg.Storage.Dir != "" {
			path = filepath.Join(cfg.Storage.Dir, path)
		}
		return sqlite.New(path, log)
	case config.BackendFile, "":
		return file.New(cfg.Storage.Dir, log)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Storage.Backend)
	}
}

// Store exposes the record store, mainly for tests.
func (a *App) Store() *store.Store {
	return a.store
}

// Run serves until ctx is cancelled or one of the servers fails, then shuts
// both down and releases resources.
func (a *App) Run(ctx context.Context) error {
	tcpLn, err := net.Listen("tcp", a.cfg.Server.Address)
	if err != nil {
		a.close()
		return fmt.Errorf("listen %s: %w", a.cfg.Server.Address, err)
	}

	var httpLn net.Listener
	if a.http != nil {
		httpLn, err = net.Listen("tcp", a.http.Addr)
		if err != nil {
			tcpLn.Close()
			a.close()
			return fmt.Errorf("listen %s: %w", a.http.Addr, err)
		}
	}

	return a.serve(ctx, tcpLn, httpLn)
}

func (a *App) serve(ctx context.Context, tcpLn, httpLn net.Listener) error {
	defer a.close()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.tcp.Serve(tcpLn)
	})

	if a.http != nil && httpLn != nil {
		g.Go(func() error {
			a.log.Info("HTTP server started", slog.String("address", httpLn.Addr().String()))
			if err := a.http.Serve(httpLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		if err := a.tcp.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("tcp shutdown: %w", err))
		}
		if a.http != nil {
			if err := a.http.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("http shutdown: %w", err))
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

func (a *App) close() {
	if err := a.store.Save(context.Background()); err != nil {
		a.log.Error("final save failed", slog.String("error", err.Error()))
	}
	if err := a.connLog.Close(); err != nil {
		a.log.Error("close connection log", slog.String("error", err.Error()))
	}
	if err := a.docs.Close(); err != nil {
		a.log.Error("close storage", slog.String("error", err.Error()))
	}
}
