package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"quiz-timer-service/internal/app"
	"quiz-timer-service/internal/config"
	"quiz-timer-service/internal/infra/memory"
	"quiz-timer-service/internal/infra/postgres"
	redisstore "quiz-timer-service/internal/infra/redis"
	transport "quiz-timer-service/internal/transport/http"
)

const janitorInterval = time.Minute

func newStartCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return runServer(cmd.Context(), cfg, opts.resolvePort(cfg), logger)
		},
	}
}

// backends holds the optional external clients shared by start and play.
type backends struct {
	redis *redis.Client
	pool  *pgxpool.Pool
}

func (b *backends) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
	if b.redis != nil {
		_ = b.redis.Close()
	}
}

func connectBackends(ctx context.Context, cfg config.Config) (*backends, error) {
	b := &backends{}
	if cfg.Redis.Addr != "" {
		b.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.pool = pool
	}
	return b, nil
}

// questionLoader layers the bank sources: Postgres if configured, else the
// built-in seed, fronted by the Redis cache when Redis is available.
func (b *backends) questionLoader(cfg config.Config) app.QuestionLoader {
	var loader app.QuestionLoader = memory.NewSeedQuestionLoader()
	if b.pool != nil {
		loader = postgres.NewQuestionLoader(b.pool)
	}
	if b.redis != nil {
		loader = redisstore.NewQuestionCache(b.redis, loader, config.TTLDuration(cfg.Quiz.BankCacheTTL, 10*time.Minute))
	}
	return loader
}

func runServer(ctx context.Context, cfg config.Config, port string, logger *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Postgres.URL != "" {
		if err := runMigrations(ctx, cfg, logger, false); err != nil {
			return err
		}
	}

	b, err := connectBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	bank, err := app.LoadBank(ctx, b.questionLoader(cfg))
	if err != nil {
		return err
	}
	logger.Infow("question bank loaded", "questions", bank.TotalCount())

	sessionTTL := config.TTLDuration(cfg.Quiz.SessionTTL, 30*time.Minute)
	var (
		store app.SessionRepository
		evict func(context.Context) []string
	)
	if b.redis != nil {
		rs := redisstore.NewSessionStore(b.redis, config.TTLDuration(cfg.Redis.TTL, sessionTTL))
		store, evict = rs, rs.EvictExpired
	} else {
		ms := memory.NewSessionStore()
		store = ms
		evict = func(context.Context) []string {
			return ms.EvictStartedBefore(time.Now().Add(-sessionTTL))
		}
	}

	service := app.NewQuizService(bank, store, logger)
	handler := transport.NewHandler(service, logger, cfg.Quiz.DefaultQuestionCount)
	router := transport.NewRouter(handler, transport.NewWSHandler(service, logger), logger)

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  config.TTLDuration(cfg.Server.ReadTimeout, 15*time.Second),
		WriteTimeout: config.TTLDuration(cfg.Server.WriteTimeout, 15*time.Second),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infow("starting quiz service", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(janitorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if ids := evict(gctx); len(ids) > 0 {
					logger.Infow("evicted expired sessions", "count", len(ids))
				}
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Infow("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
