package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"go.uber.org/dig"

	"getmystuff-courier/internal/config"
	"getmystuff-courier/internal/jobs"
	"getmystuff-courier/internal/logx"
	"getmystuff-courier/internal/repository"
	"getmystuff-courier/internal/service/capacity"
	"getmystuff-courier/internal/service/notifications"
	"getmystuff-courier/internal/service/trips"
	"getmystuff-courier/internal/transport/kafka"
)

const shutdownTimeout = 15 * time.Second

// MustRun starts the HTTP server using the provided DI container
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

type runnerIn struct {
	dig.In

	Ctx      context.Context
	Config   *config.Config
	Logger   logx.Logger
	Server   *http.Server
	Pprof    *http.Server `name:"pprof_server" optional:"true"`
	Watcher  *jobs.UrgencyWatcher
	Consumer *kafka.Consumer
	Producer *kafka.Producer

	Users         *repository.UserDirectory
	Trips         *trips.Service
	Capacity      *capacity.Service
	Notifications *notifications.Service
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runnerIn) error {
		defer func() { _ = in.Logger.Sync() }()

		if in.Config.SeedDemoData {
			if err := seedDemo(in.Ctx, time.Now().UTC(), in.Users, in.Trips, in.Capacity, in.Notifications); err != nil {
				return err
			}
			in.Logger.Info("demo data seeded")
		}
		if err := in.Watcher.Start(); err != nil {
			return err
		}

		runCtx, stop := context.WithCancel(in.Ctx)
		defer stop()

		errCh := make(chan error, 2)
		startServer(in.Server, "http server", in.Logger, errCh)
		if in.Pprof != nil {
			startServer(in.Pprof, "pprof server", in.Logger, errCh)
		}
		consumerDone := startConsumer(runCtx, in.Consumer, in.Logger)

		var runErr error
		select {
		case <-in.Ctx.Done():
			in.Logger.Info("shutting down")
		case runErr = <-errCh:
			in.Logger.Error("server failed, shutting down", logx.Err(runErr))
		}

		stop()
		shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		gracefulShutdown(shCtx, in.Server, in.Logger)
		if in.Pprof != nil {
			gracefulShutdown(shCtx, in.Pprof, in.Logger)
		}
		in.Watcher.Stop(shCtx)
		closeResources(in.Consumer, in.Producer, in.Logger)
		<-consumerDone
		return runErr
	})
}

func startServer(server *http.Server, name string, logger logx.Logger, errCh chan<- error) {
	go func() {
		logger.Info(name+" listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
}

func startConsumer(ctx context.Context, c *kafka.Consumer, logger logx.Logger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if c == nil {
			return
		}
		logger.Info("notification consumer started")
		if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("notification consumer stopped", logx.Err(err))
		}
	}()
	return done
}

func gracefulShutdown(ctx context.Context, srv *http.Server, logger logx.Logger) {
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown error", logx.String("addr", srv.Addr), logx.Err(err))
	}
}

func closeResources(c *kafka.Consumer, p *kafka.Producer, logger logx.Logger) {
	if err := c.Close(); err != nil {
		logger.Warn("consumer close error", logx.Err(err))
	}
	if err := p.Close(); err != nil {
		logger.Warn("producer close error", logx.Err(err))
	}
}
