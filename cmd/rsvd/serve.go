package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"rtrsv/internal/api"
	"rtrsv/internal/host"
	"rtrsv/internal/rsv"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the reservation API for processes on this host.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()

		procs := host.NewProcs(time.Duration(cfg.PollMS)*time.Millisecond, log)
		procs.Start()
		m := rsv.New(cfg, procs, host.FIFO{}, rsv.WithLogger(log))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		m.Start(ctx)

		drained, err := startJournal(cfg, m, log)
		if err != nil {
			m.Close()
			procs.Stop()
			return err
		}
		atexit.Register(func() {
			// every reserved process goes back to SCHED_OTHER
			m.Close()
			procs.Stop()
			<-drained
		})

		srv := &http.Server{Addr: cfg.Listen, Handler: api.NewServer(m, log)}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn("shutdown", "err", err)
			}
		}()

		log.Info("serving", "listen", cfg.Listen, "capacity", cfg.Capacity)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}
