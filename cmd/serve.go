package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arcusworks/deckherald/internal/bot"
	"github.com/arcusworks/deckherald/internal/config"
	"github.com/arcusworks/deckherald/internal/deckcode"
	"github.com/arcusworks/deckherald/internal/library"
	"github.com/arcusworks/deckherald/internal/render"
	"github.com/arcusworks/deckherald/internal/server"
)

var serveVerbose bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the deck-code bot with a health endpoint",
	Long: `Serve runs the message loop: every incoming message is checked for a
deck code, and codes that decode to cards are answered with a rendered
deck sheet. A /healthz HTTP endpoint is exposed on the configured listen
address.

Credentials and overrides come from the environment: DECKHERALD_TOKEN,
DECKHERALD_LISTEN and DECKHERALD_LIBRARY. Without a platform adapter the
loop reads messages from stdin, one per line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if serveVerbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %v", err)
		}
		envCfg, err := config.ParseEnv()
		if err != nil {
			return err
		}
		envCfg.Apply(cfg)
		if envCfg.Token == "" {
			logger.Warn("DECKHERALD_TOKEN not set; replies go to stdout")
		}

		lib, err := library.Load(cfg.LibraryPath)
		if err != nil {
			return fmt.Errorf("error loading library: %v", err)
		}

		renderer := render.New(lib, render.Options{
			CardWidth:  cfg.Render.CardWidth,
			CardHeight: cfg.Render.CardHeight,
			Gutter:     cfg.Render.Gutter,
			CacheDir:   config.GetCacheDir(),
		})
		handler := bot.NewHandler(deckcode.NewDecoder(), renderer, logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			err := server.ListenAndServe(ctx, cfg.Listen, logger)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("health server failed", zap.Error(err))
			}
		}()

		gateway := bot.NewStdioGateway(os.Stdin, os.Stdout, "")
		if err := bot.Run(ctx, gateway, handler, logger); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Enable debug logging")
}
