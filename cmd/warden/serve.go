package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"warden/internal/bot"
	"warden/internal/document"
	"warden/internal/optin"
	"warden/internal/platform/config"
	"warden/internal/platform/httpserver"
	"warden/internal/platform/lock"
	"warden/internal/platform/logger"
	"warden/internal/platform/metrics"
	redisplatform "warden/internal/platform/redis"
	"warden/internal/reconcile"
	"warden/internal/rules"
	"warden/internal/screening"
	httptransport "warden/internal/transport/http"
	audit "warden/pkg/platform/audit"
	auditpublisher "warden/pkg/platform/audit/publisher"
	"warden/pkg/platform/audit/store/kafka"
	"warden/pkg/platform/audit/store/memory"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to the gateway and serve the ops HTTP surface",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, config.FromEnv())
	},
}

// serve wires the process and blocks until ctx is cancelled or a component fails.
func serve(ctx context.Context, cfg config.Config) error {
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	redisClient, err := redisplatform.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	var locker lock.Locker = lock.NewMemoryLocker()
	checks := map[string]httptransport.HealthChecker{}
	if redisClient != nil {
		defer redisClient.Close()
		locker = lock.NewRedisLocker(redisClient.Client)
		checks["redis"] = redisClient
		log.Info("using redis for the bulk operation lock")
	}

	auditStore, closeStore, err := newAuditStore(cfg.Audit, log)
	if err != nil {
		return err
	}
	defer closeStore()
	auditPub := auditpublisher.NewPublisher(auditStore, auditpublisher.WithAsyncBuffer(256), auditpublisher.WithLogger(log))
	defer func() {
		if err := auditPub.Close(); err != nil {
			log.Error("audit publisher close failed", "error", err)
		}
	}()

	session, err := bot.NewSession(cfg.Bot.Token)
	if err != nil {
		return err
	}
	adapter := bot.NewAdapter(session)
	fetcher := document.NewHTTPFetcher(cfg.Bot.FetchTimeout)

	reconciler, err := reconcile.New(fetcher, adapter,
		reconcile.WithLogger(log), reconcile.WithMetrics(m), reconcile.WithAuditPublisher(auditPub))
	if err != nil {
		return err
	}
	rulesPub, err := rules.New(fetcher, adapter, adapter,
		rules.WithLogger(log), rules.WithMetrics(m), rules.WithAuditPublisher(auditPub))
	if err != nil {
		return err
	}
	screeningHandler, err := screening.New(adapter,
		screening.WithLogger(log), screening.WithMetrics(m), screening.WithAuditPublisher(auditPub))
	if err != nil {
		return err
	}
	toggler, err := optin.New(adapter,
		optin.WithLogger(log), optin.WithMetrics(m), optin.WithAuditPublisher(auditPub))
	if err != nil {
		return err
	}
	ops, err := bot.NewOperations(cfg.Bot, adapter, reconciler, rulesPub, locker,
		bot.WithOperationsLogger(log), bot.WithOperationsMetrics(m), bot.WithLifetime(ctx))
	if err != nil {
		return err
	}

	commands := bot.NewCommands(cfg.Bot, adapter, ops, bot.WithCommandsLogger(log), bot.WithCommandsMetrics(m))
	events := bot.NewEvents(cfg.Bot, adapter, screeningHandler, toggler, commands, log)
	discord := bot.New(session, events, log, cfg.Bot.HandlerTimeout)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Admin:      httptransport.NewAdminHandler(ops, auditPub, log),
		AdminToken: cfg.Server.AdminToken,
		Gatherer:   reg,
		Checks:     checks,
		Logger:     log,
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return discord.Run(gctx)
	})
	g.Go(func() error {
		log.Info("ops server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ops server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	log.Info("warden stopped", "error", err)
	return err
}

func newAuditStore(cfg config.AuditConfig, log *slog.Logger) (audit.Store, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		return memory.NewInMemoryStore(), func() {}, nil
	}
	store, err := kafka.New(cfg.KafkaBrokers, cfg.Topic)
	if err != nil {
		return nil, nil, err
	}
	log.Info("shipping audit events to kafka", "topic", cfg.Topic, "brokers", cfg.KafkaBrokers)
	return store, store.Close, nil
}
