package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "fatrobin/internal/adapter/http"
	"fatrobin/internal/adapter/memory"
	"fatrobin/internal/app"
	"fatrobin/internal/config"
	"fatrobin/internal/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Error(ctx, "fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		return err
	}

	db := memory.New()
	dosingSvc := app.NewDosingService(cfg.Potencies)
	sessionSvc := app.NewSessionService(db, dosingSvc, cfg.SessionTTL)

	go sweep(ctx, sessionSvc, cfg.SweepInterval)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           adapthttp.New(dosingSvc, sessionSvc).WithCompression(cfg.CompressMinSize).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", cfg.Addr, "potencies", cfg.Potencies)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// sweep drops expired sessions every interval until ctx is done.
func sweep(ctx context.Context, svc *app.SessionService, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := svc.Sweep(ctx)
			if err != nil {
				log.Warn(ctx, "session sweep failed", "err", err)
				continue
			}
			if n > 0 {
				log.Debug(ctx, "swept sessions", "removed", n)
			}
		}
	}
}
