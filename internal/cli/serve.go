package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/eudistrict/chancery/internal/auth"
	"github.com/eudistrict/chancery/internal/config"
	"github.com/eudistrict/chancery/internal/metrics"
	"github.com/eudistrict/chancery/internal/relay"
	"github.com/eudistrict/chancery/internal/service"
	"github.com/eudistrict/chancery/internal/workflow"
)

// sweepInterval is how often expired sessions are dropped.
const sweepInterval = 5 * time.Minute

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "serve",
		Short:        "Run the Connect API and the static web front end",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	store, err := openStore(cfg, m)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions := auth.NewSessions(cfg.Auth.SessionTTL)
	sessions.OnChange(func(n int) { m.ActiveSessions.Set(float64(n)) })
	go sweepSessions(ctx, sessions)

	logger := slog.Default()
	deps := service.Deps{
		Engine: workflow.New(store,
			workflow.WithBalancePolicy(cfg.Finance.BalancePolicy),
			workflow.WithLogger(logger),
		),
		Authenticator: auth.NewSheetAuthenticator(store, auth.WithLogger(logger)),
		Sessions:      sessions,
		JWT:           auth.NewJWTManager(cfg.Auth.JWTSecret, sessions),
		Metrics:       m,
		Logger:        logger,
	}
	if cfg.Relay.URL != "" {
		deps.Uploader = relay.New(cfg.Relay.URL, cfg.Relay.FolderID,
			relay.WithTimeout(cfg.Relay.Timeout),
			relay.WithMetrics(m),
		)
		slog.Info("File relay enabled", "folder_id", cfg.Relay.FolderID, "timeout", cfg.Relay.Timeout)
	} else {
		slog.Warn("File relay not configured; attachments will be refused")
	}

	mux := http.NewServeMux()
	service.Mount(mux, deps)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	static, err := staticHandler(cfg.StaticDir)
	if err != nil {
		return err
	}
	mux.Handle("/", static)

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	handler := h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func sweepSessions(ctx context.Context, sessions *auth.Sessions) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(); n > 0 {
				slog.Debug("Expired sessions removed", "count", n)
			}
		}
	}
}
