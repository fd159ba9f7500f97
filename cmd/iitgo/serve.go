package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/iitgo/internal/calculation"
	"github.com/rgehrsitz/iitgo/internal/config"
	"github.com/rgehrsitz/iitgo/internal/logging"
	"github.com/rgehrsitz/iitgo/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			settings, err := config.LoadServerSettings(configPath)
			if err != nil {
				return err
			}
			if port, _ := cmd.Flags().GetInt("port"); port > 0 {
				settings.Server.Port = port
			}

			logger, err := logging.New(logging.Config{
				Level:      settings.Logger.Level,
				OutputPath: settings.Logger.OutputPath,
				Format:     settings.Logger.Format,
			})
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer logger.Sync()

			rulesPath, _ := cmd.Flags().GetString("rules")
			if rulesPath == "" {
				rulesPath = settings.RulesPath
			}
			rules, err := config.LoadRules(rulesPath)
			if err != nil {
				logger.Error("Failed to load tax rules", zap.String("path", rulesPath), zap.Error(err))
				return err
			}
			engine, err := calculation.NewEngine(rules)
			if err != nil {
				logger.Error("Invalid tax rules", zap.Error(err))
				return err
			}
			engine.SetLogger(logger.Sugar())

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.NewServer(settings.Server, settings.RateLimit, engine, logger)
			return srv.Start(ctx)
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to a server config YAML file")
	cmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides config)")
	return cmd
}
