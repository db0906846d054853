// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"local.dev/prepcircle-backend/internal/config"
	"local.dev/prepcircle-backend/internal/httpx"
	"local.dev/prepcircle-backend/internal/models"
	"local.dev/prepcircle-backend/internal/playback"
	"local.dev/prepcircle-backend/internal/store"
)

var (
	configPath string
	verbose    bool
	addr       string
)

var rootCmd = &cobra.Command{
	Use:   "prepcircle",
	Short: "Community backend for disaster-preparedness training",
	Long: `prepcircle serves the community feed, notifications, privacy settings
and the mandatory training-video player over a JSON API.

All state lives in memory and is seeded from fixtures on start.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var fixturesCmd = &cobra.Command{
	Use:   "fixtures [file]",
	Short: "Validate a fixtures file and print a summary",
	Long: `Parses and normalizes a fixtures file the same way serve does.
Without an argument the embedded defaults are checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFixtures,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr and PORT")

	rootCmd.AddCommand(serveCmd, fixturesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	zl, err := newLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()
	logger := zl.Sugar()

	fx, err := store.LoadFixtures(cfg.Fixtures)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &httpx.AppCtx{
		Store:    store.NewStore(fx),
		Playback: playback.NewManager(cfg.Playback.Tick, cfg.Playback.Step, logger.Named("playback")),
		Config:   cfg,
		Logger:   logger,
	}
	defer app.Playback.Shutdown()

	client, err := config.NewAuthClient(ctx, cfg.Auth)
	if err != nil {
		return err
	}
	if client != nil {
		app.Auth = client
	}
	if cfg.Auth.NoAuth {
		logger.Warn("NO_AUTH=1: identities are taken from Debug headers, unverified tokens or cookies")
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      httpx.NewRouter(app),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("listening", "addr", cfg.Server.Addr, "posts", len(fx.Posts), "videos", len(fx.Videos))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runFixtures(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	fx, err := store.LoadFixtures(path)
	if err != nil {
		return err
	}
	printSummary(cmd, fx)
	return nil
}

func printSummary(cmd *cobra.Command, fx *store.Fixtures) {
	out := cmd.OutOrStdout()
	ov := store.NewStore(fx).Overview()

	fmt.Fprintf(out, "profiles:      %d\n", len(fx.Profiles))
	fmt.Fprintf(out, "posts:         %d (%d replies)\n", ov.Posts, ov.Replies)
	fmt.Fprintf(out, "notifications: %d\n", len(fx.Notifications))
	fmt.Fprintf(out, "videos:        %d\n", len(fx.Videos))

	fmt.Fprintln(out, "by circle:")
	for _, c := range models.Circles() {
		fmt.Fprintf(out, "  %-18s %d\n", c.ID, ov.PostsByCircle[c.ID])
	}

	fmt.Fprintln(out, "by module:")
	mods := models.Modules()
	sort.Slice(mods, func(i, j int) bool { return mods[i] < mods[j] })
	for _, m := range mods {
		fmt.Fprintf(out, "  %-24s %d\n", m, ov.PostsByModule[m])
	}
}
