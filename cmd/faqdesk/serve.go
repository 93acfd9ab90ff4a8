package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zhouzirui/faqdesk/backend/internal/handler"
	"github.com/zhouzirui/faqdesk/backend/internal/middleware"
	"github.com/zhouzirui/faqdesk/backend/internal/service/widget"
)

func newServeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the panel API and the browser panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), e)
		},
	}
}

func serve(ctx context.Context, e *env) error {
	widgets := widget.NewService(e.catalog, widget.Options{
		ReplyDelay: e.cfg.Widget.ReplyDelay,
		Logger:     &e.log,
	})

	var limiter *middleware.RateLimiter
	if e.cfg.RateLimit.Enabled() {
		limiter = middleware.NewRateLimiter(e.cfg.RateLimit.RPS, e.cfg.RateLimit.Burst)
	}

	srv := &http.Server{
		Addr:              e.cfg.Server.Addr,
		Handler:           handler.NewRouter(e.log, widgets, limiter),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e.log.Info().Str("addr", srv.Addr).Msg("faqdesk listening")
		return runServer(ctx, srv)
	})
	g.Go(func() error {
		sweepIdle(ctx, widgets, e.cfg.Widget.SweepInterval, e.cfg.Widget.SessionIdleTTL)
		return nil
	})
	return g.Wait()
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func sweepIdle(ctx context.Context, widgets *widget.Service, every, idle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			widgets.Sweep(idle)
		}
	}
}
