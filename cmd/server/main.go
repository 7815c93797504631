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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	ballothandler "quorum/internal/ballot/handler"
	ballotmetrics "quorum/internal/ballot/metrics"
	"quorum/internal/ballot/receipttoken"
	"quorum/internal/ballot/sealer"
	ballotservice "quorum/internal/ballot/service"
	cleanuphandler "quorum/internal/cleanup/handler"
	"quorum/internal/cleanup/lock"
	cleanupmetrics "quorum/internal/cleanup/metrics"
	cleanupservice "quorum/internal/cleanup/service"
	orgadapters "quorum/internal/organization/adapters"
	orghandler "quorum/internal/organization/handler"
	orgmetrics "quorum/internal/organization/metrics"
	orgservice "quorum/internal/organization/service"
	otphandler "quorum/internal/otp/handler"
	otpmetrics "quorum/internal/otp/metrics"
	otpservice "quorum/internal/otp/service"
	"quorum/internal/platform/config"
	"quorum/internal/platform/httpserver"
	"quorum/internal/platform/logger"
	"quorum/internal/platform/metrics"
	"quorum/internal/platform/postgres"
	"quorum/internal/platform/redis"
	sessionadapters "quorum/internal/session/adapters"
	sessionhandler "quorum/internal/session/handler"
	sessionmetrics "quorum/internal/session/metrics"
	sessionservice "quorum/internal/session/service"
	httptransport "quorum/internal/transport/http"
	"quorum/pkg/email"
	"quorum/pkg/platform/audit"
	"quorum/pkg/platform/audit/publisher"
	"quorum/pkg/platform/audit/store/kafka"
	"quorum/pkg/platform/audit/store/logstore"
	"quorum/pkg/platform/middleware/ratelimit"
	"quorum/pkg/platform/retry"
)

const (
	receiptTokenIssuer = "quorum"
	auditBuffer        = 1024
	cleanupLockKey     = "quorum:cleanup:lock"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	envFile   string
	addr      string
	logLevel  string
	logFormat string
	inMemory  bool
}

func parseFlags(args []string) (*flags, *pflag.FlagSet, error) {
	var f flags
	fs := pflag.NewFlagSet("quorum", pflag.ContinueOnError)
	fs.StringVar(&f.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	fs.StringVar(&f.addr, "addr", "", "listen address (overrides QUORUM_ADDR)")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error (overrides QUORUM_LOG_LEVEL)")
	fs.StringVar(&f.logFormat, "log-format", "", "json or text (overrides QUORUM_LOG_FORMAT)")
	fs.BoolVar(&f.inMemory, "in-memory", false, "ignore DATABASE_URL and keep all state in memory")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return &f, fs, nil
}

func loadConfig(f *flags, fs *pflag.FlagSet) (*config.Config, error) {
	if err := godotenv.Load(f.envFile); err != nil && (fs.Changed("env-file") || !errors.Is(err, os.ErrNotExist)) {
		return nil, fmt.Errorf("load %s: %w", f.envFile, err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if fs.Changed("addr") {
		cfg.Server.Addr = f.addr
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if f.inMemory {
		cfg.Database.URL = ""
	}
	return cfg, nil
}

func run() error {
	f, fs, err := parseFlags(os.Args[1:])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(f, fs)
	if err != nil {
		return err
	}
	log := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	health := map[string]httptransport.HealthCheck{}

	st := memoryStores()
	if cfg.Database.URL != "" {
		pool, err := postgres.Open(ctx, postgres.Config{
			URL:          cfg.Database.URL,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			ConnMaxLife:  cfg.Database.ConnMaxLife,
		})
		if err != nil {
			return err
		}
		defer pool.Close()
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(cfg.Database.URL); err != nil {
				return err
			}
		}
		st = postgresStores(postgres.NewDB(pool, cfg.Timeouts.Store))
		health["database"] = pool.PingContext
		log.InfoContext(ctx, "using postgres stores")
	} else {
		log.WarnContext(ctx, "DATABASE_URL not set, state is kept in memory")
	}

	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		health["redis"] = rdb.Health
	}

	auditStore, closeAudit, err := newAuditStore(ctx, cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer closeAudit()
	auditor := publisher.NewPublisher(auditStore,
		publisher.WithLogger(log),
		publisher.WithMetrics(publisher.NewMetrics(reg)),
		publisher.WithAsyncBuffer(auditBuffer),
	)
	defer func() {
		if err := auditor.Close(); err != nil {
			log.Error("failed to flush audit events", "error", err)
		}
	}()

	var sender email.Sender = email.NewLogSender(log)
	if cfg.SMTP.Host != "" {
		sender = email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	retryPolicy := retry.Policy{
		MaxAttempts:     cfg.Retry.MaxAttempts,
		InitialInterval: cfg.Retry.InitialInterval,
		MaxInterval:     cfg.Retry.MaxInterval,
	}

	otpSvc, err := otpservice.New(st.otps, sender, otpservice.Config{
		TTL:         cfg.Auth.OTPTTL,
		MaxAttempts: cfg.Auth.OTPMaxAttempts,
		SendTimeout: cfg.Timeouts.Email,
	},
		otpservice.WithLogger(log),
		otpservice.WithAuditPublisher(auditor),
		otpservice.WithMetrics(otpmetrics.New(reg)),
	)
	if err != nil {
		return err
	}

	sessionSvc, err := sessionservice.New(st.sessions,
		sessionadapters.NewOrganizationDirectory(st.users, st.memberships),
		otpSvc,
		sessionservice.Config{TTL: cfg.Auth.SessionTTL},
		sessionservice.WithLogger(log),
		sessionservice.WithAuditPublisher(auditor),
		sessionservice.WithMetrics(sessionmetrics.New(reg)),
	)
	if err != nil {
		return err
	}

	orgSvc, err := orgservice.New(st.orgs, st.users, st.memberships, st.invitations, otpSvc,
		orgservice.Config{BcryptCost: cfg.Auth.BcryptCost, Retry: retryPolicy},
		orgservice.WithLogger(log),
		orgservice.WithAuditPublisher(auditor),
		orgservice.WithMetrics(orgmetrics.New(reg)),
		orgservice.WithTxRunner(st.tx),
		orgservice.WithSessionIssuer(orgadapters.NewSessionIssuer(sessionSvc)),
	)
	if err != nil {
		return err
	}

	ballotSvc, err := newBallotService(cfg, st, retryPolicy, log, auditor, reg)
	if err != nil {
		return err
	}

	cleanupOpts := []cleanupservice.Option{
		cleanupservice.WithLogger(log),
		cleanupservice.WithAuditPublisher(auditor),
		cleanupservice.WithMetrics(cleanupmetrics.New(reg)),
	}
	if rdb != nil {
		cleanupOpts = append(cleanupOpts, cleanupservice.WithLocker(lock.NewRedis(rdb, cleanupLockKey, cfg.Cleanup.LockTTL)))
	}
	scheduler, err := cleanupservice.New(st.cleanupRuns, st.sessions, st.invitations, st.otps, cleanupservice.Config{
		Interval:        cfg.Cleanup.Interval,
		CategoryTimeout: cfg.Cleanup.CategoryTimeout,
		SessionTTL:      cfg.Auth.SessionTTL,
		SessionGrace:    cfg.Cleanup.SessionGrace,
		TokenGrace:      cfg.Cleanup.TokenGrace,
		OTPGrace:        cfg.Cleanup.OTPGrace,
	}, cleanupOpts...)
	if err != nil {
		return err
	}

	limiter := ratelimit.New(cfg.Server.RateLimitPerMinute, cfg.Server.RateLimitBurst, log)
	router := httptransport.NewRouter(httptransport.Handlers{
		Organizations: orghandler.New(orgSvc, log),
		OTP:           otphandler.New(otpSvc, log),
		Sessions:      sessionhandler.New(sessionSvc, log),
		Ballots:       ballothandler.New(ballotSvc, log),
		Cleanup:       cleanuphandler.New(scheduler, log),
	}, httptransport.Deps{
		Logger:         log,
		Metrics:        metrics.New(reg),
		Gatherer:       reg,
		Sessions:       sessionSvc,
		Limit:          limiter.Middleware,
		AdminToken:     cfg.Server.AdminToken,
		RequestTimeout: cfg.Server.RequestTimeout,
		Health:         health,
	})
	srv := httpserver.New(cfg.Server, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.InfoContext(gctx, "starting quorum", "addr", cfg.Server.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := scheduler.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func newBallotService(
	cfg *config.Config,
	st *stores,
	retryPolicy retry.Policy,
	log *slog.Logger,
	auditor audit.Emitter,
	reg prometheus.Registerer,
) (*ballotservice.Service, error) {
	seal, err := sealer.New(cfg.Ballot.EncryptionKey, cfg.Ballot.SigningKey)
	if err != nil {
		return nil, err
	}
	tokens, err := receipttoken.NewIssuer(cfg.Ballot.ReceiptTokenKey, receiptTokenIssuer, cfg.Ballot.ReceiptTokenTTL)
	if err != nil {
		return nil, err
	}
	return ballotservice.New(st.ballots, seal, tokens, ballotservice.Config{
		ChangeWindow: cfg.Ballot.ChangeWindow,
		MaxChanges:   cfg.Ballot.MaxChanges,
		Retry:        retryPolicy,
	},
		ballotservice.WithLogger(log),
		ballotservice.WithAuditPublisher(auditor),
		ballotservice.WithMetrics(ballotmetrics.New(reg)),
	)
}

// newAuditStore forwards audit events to Kafka when brokers are configured
// and to the process log otherwise.
func newAuditStore(ctx context.Context, cfg config.Kafka, log *slog.Logger) (audit.Store, func(), error) {
	if len(cfg.Brokers) == 0 {
		return logstore.New(log), func() {}, nil
	}
	client, err := kafka.NewClient(cfg.Brokers)
	if err != nil {
		return nil, nil, err
	}
	if err := kafka.EnsureTopic(ctx, client, cfg.Topic, 3, 1); err != nil {
		client.Close()
		return nil, nil, err
	}
	log.InfoContext(ctx, "publishing audit events to kafka", "topic", cfg.Topic)
	return kafka.New(client, cfg.Topic), client.Close, nil
}
