// path: cmd/serve.go
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RodyMacay/biodiversity-monitoring/auth"
	"github.com/RodyMacay/biodiversity-monitoring/config"
	"github.com/RodyMacay/biodiversity-monitoring/controllers"
	"github.com/RodyMacay/biodiversity-monitoring/graph"
	"github.com/RodyMacay/biodiversity-monitoring/middleware"
	"github.com/RodyMacay/biodiversity-monitoring/resolvers"
	"github.com/RodyMacay/biodiversity-monitoring/routes"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logData, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logData.Close()
	log := logData.Logger

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := repo.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("store close")
		}
	}()

	r := resolvers.New(repo,
		resolvers.WithLogger(log),
		resolvers.WithMonthOrder(cfg.Dashboard.MonthOrder),
	)
	schema, err := graph.New(r)
	if err != nil {
		return err
	}

	var verifier auth.Verifier
	jwtVerifier, err := auth.NewJWTVerifier(cfg.Auth)
	switch {
	case errors.Is(err, auth.ErrNoKey):
		log.Warn().Msg("no JWT key configured; every request is anonymous")
	case err != nil:
		return err
	default:
		verifier = jwtVerifier
	}

	app := newApp(cfg.Server, log, verifier, r, &controllers.Handlers{
		Schema:   schema,
		Resolver: r,
		Timeout:  cfg.Server.RequestTimeout,
		Log:      log,
	})

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Str("store", cfg.Store).Msg("API listening")
		errc <- app.Listen(cfg.Server.Addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	return app.ShutdownWithTimeout(shutdownTimeout)
}

// newApp assembles the fiber app: panic recovery, request ids, CORS,
// request logging, optional bearer auth, then the routes.
func newApp(cfg config.ServerConfig, log zerolog.Logger, verifier auth.Verifier, prov auth.Provisioner, h *controllers.Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "biodiversity-monitoring",
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: middleware.RequestIDKey,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "*",
		AllowCredentials: false,
		MaxAge:           int((12 * time.Hour).Seconds()),
	}))
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.OptionalAuth(verifier, prov, log))

	routes.Register(app, h)
	return app
}
