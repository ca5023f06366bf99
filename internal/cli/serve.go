package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fxola/trivia-api/internal/config"
	"github.com/fxola/trivia-api/internal/database"
	"github.com/fxola/trivia-api/internal/handler"
	"github.com/fxola/trivia-api/internal/logger"
	"github.com/fxola/trivia-api/internal/ratelimit"
	"github.com/fxola/trivia-api/internal/service"
	"github.com/fxola/trivia-api/internal/websocket"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr string
	Seed bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the trivia HTTP API until interrupted.

Example:
  trivia serve --addr :8080
  trivia serve --driver memory --seed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address, overrides HTTP_ADDR")
	cmd.Flags().BoolVar(&opts.Seed, "seed", false, "load the built-in question bank when the store is empty")

	return cmd
}

func runServer(cmd *cobra.Command, opts *ServeOptions) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}
	if opts.Addr != "" {
		cfg.HTTPAddr = opts.Addr
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	if opts.Seed {
		if err := seedIfEmpty(ctx, store, log); err != nil {
			return fmt.Errorf("failed to seed store: %w", err)
		}
	}

	limiter, closeLimiter, err := newLimiter(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeLimiter()

	// Initialize websocket hub
	hub := websocket.NewHub(log)
	go hub.Run(ctx)

	e := handler.NewServer(
		service.NewQuestionService(store, hub),
		service.NewQuizService(store, nil),
		handler.Options{
			PageSize: cfg.PageSize,
			Limiter:  limiter,
			Hub:      hub,
			Log:      log,
		},
	)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr), zap.String("driver", cfg.StoreDriver))
		errCh <- e.Start(cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down the server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// newLimiter connects to Redis when it is configured. Without Redis the API runs unthrottled.
func newLimiter(ctx context.Context, cfg *config.Config, log *zap.Logger) (*ratelimit.Limiter, func(), error) {
	if cfg.Redis == nil || cfg.Redis.Addr == "" {
		log.Info("rate limiting disabled")
		return nil, func() {}, nil
	}

	client, err := database.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	log.Info("rate limiting enabled", zap.Int("limit", cfg.RateLimit), zap.Duration("window", cfg.RateWindow))
	return ratelimit.New(client, cfg.RateLimit, cfg.RateWindow), func() { client.Close() }, nil
}
