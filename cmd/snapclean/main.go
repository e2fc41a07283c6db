package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mojibrsm/snapclean/internal/profile"
	"github.com/mojibrsm/snapclean/plugin/removebg"
	"github.com/mojibrsm/snapclean/server"
	"github.com/mojibrsm/snapclean/server/bot"
	"github.com/mojibrsm/snapclean/server/telegram"
	"github.com/mojibrsm/snapclean/store"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "snapclean",
	Short:   "Telegram bot that removes photo backgrounds via remove.bg",
	Version: version,
	RunE:    run,
}

func init() {
	rootCmd.Flags().String("mode", "", "run mode (dev or prod)")
	rootCmd.Flags().String("ops-addr", "", "listen address for health/stats endpoints")
	rootCmd.Flags().String("staging-dir", "", "directory for staged photos")

	_ = viper.BindPFlag("mode", rootCmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("ops-addr", rootCmd.Flags().Lookup("ops-addr"))
	_ = viper.BindPFlag("staging-dir", rootCmd.Flags().Lookup("staging-dir"))
}

func run(cmd *cobra.Command, _ []string) error {
	p := &profile.Profile{Version: version}
	p.FromEnv()

	// Flags override environment configuration.
	if mode := viper.GetString("mode"); mode != "" {
		p.Mode = mode
	}
	if addr := viper.GetString("ops-addr"); addr != "" {
		p.OpsAddr = addr
	}
	if dir := viper.GetString("staging-dir"); dir != "" {
		p.StagingDir = dir
	}

	if err := p.Validate(); err != nil {
		return err
	}

	logger := newLogger(p)
	slog.SetDefault(logger)

	st := store.New(p.PendingTTL)

	client := removebg.NewClient(&removebg.Config{
		APIKey:  p.RemoveBGAPIKey,
		BaseURL: p.RemoveBGBaseURL,
		Timeout: p.APITimeout,
	})

	adapter, err := telegram.NewAdapter(p.BotToken, logger)
	if err != nil {
		return err
	}

	b := bot.New(p, st, adapter, client, logger)
	srv := server.New(p, st, b, adapter, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("snapclean starting", "mode", p.Mode, "version", version)
	return srv.Start(ctx)
}

func newLogger(p *profile.Profile) *slog.Logger {
	level := slog.LevelInfo
	if p.IsDev() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
