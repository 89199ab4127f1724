package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aus-site/aus-server/internal/config"
	"github.com/aus-site/aus-server/internal/server"
	"github.com/aus-site/aus-server/internal/service"
	"github.com/aus-site/aus-server/internal/store"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		host string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the aus-server API",
		Long:  "Start the HTTP server that exposes the admin auth API and the public founder profile API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(host, port, dev)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP listen port")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "HTTP listen host")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable development mode (verbose logging)")

	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))

	return cmd
}

func runServe(host string, port int, dev bool) error {
	logLevel := slog.LevelInfo
	if dev {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	// Load the typed config file when one exists; flags and AUS_* env
	// variables override it below.
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	st, err := store.NewStore(resolveDataDir())
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer st.Close()
	logger.Info("store initialized", "path", resolveDataDir())

	jwtSecret := viper.GetString("auth.jwt_secret")
	if jwtSecret == "" {
		jwtSecret = cfg.Auth.JWTSecret
	}
	if jwtSecret == "" {
		jwtSecret = "aus-dev-secret-change-me"
		logger.Warn("no JWT secret configured, using insecure development default")
	}

	tokenTTL := service.DefaultTokenTTL
	if cfg.Auth.TokenTTL != "" {
		if ttl, err := time.ParseDuration(cfg.Auth.TokenTTL); err == nil {
			tokenTTL = ttl
		} else {
			logger.Warn("invalid token_ttl, using default", "value", cfg.Auth.TokenTTL)
		}
	}
	authSvc := service.NewAuthService(jwtSecret, tokenTTL)

	// First-run hint: without an admin the panel is unusable.
	hasAdmin, err := st.HasAnyAdmin(context.Background())
	if err != nil {
		logger.Warn("failed to check for admin", "error", err)
	}
	if !hasAdmin {
		logger.Warn("no admin account found - run: aus admin create --superadmin")
	}

	shutdownTimeout := 30 * time.Second
	if d, err := time.ParseDuration(cfg.Server.ShutdownTimeout); err == nil && d > 0 {
		shutdownTimeout = d
	}

	srvCfg := server.Config{
		Host:            host,
		Port:            port,
		ShutdownTimeout: shutdownTimeout,
		CORSOrigins:     cfg.Server.CORS.Origins,
		LoginRateLimit:  cfg.Server.LoginRateLimit,
	}

	srv := server.New(srvCfg, st, authSvc, logger)

	fmt.Printf("→ aus-server\n")
	fmt.Printf("→ Listening on http://%s:%d\n", host, port)
	fmt.Printf("→ OpenAPI:  http://%s:%d/openapi.json\n", host, port)
	fmt.Printf("→ Health:   http://%s:%d/healthz\n", host, port)
	fmt.Println()

	return srv.ListenAndServe()
}
