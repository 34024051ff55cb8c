package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
	"linekeeper/internal/app/server"
	"linekeeper/internal/config"
	"linekeeper/internal/utils/logger"
)

var (
	cfgFile  string
	address  string
	httpAddr string
	backend  string
	dataDir  string
)

var rootCmd = &cobra.Command{
	Use:          "linekeeper",
	Short:        "Linekeeper - TCP сервис хранения линий и пользователей",
	SilenceUsage: true,
	RunE:         run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	config.LoadDotEnv()

	cfg, err := config.Load(config.New(), cfgFile)
	if err != nil {
		return err
	}

	// Флаги командной строки важнее окружения и файла.
	flags := cmd.Flags()
	if flags.Changed("address") {
		cfg.Server.Address = address
	}
	if flags.Changed("http") {
		cfg.HTTP.Address = httpAddr
	}
	if flags.Changed("storage") {
		cfg.Storage.Backend = backend
	}
	if flags.Changed("data-dir") {
		cfg.Storage.Dir = dataDir
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.NewWithLevel(cfg.Env, cfg.Logger.LogLevel)
	log.Info("starting linekeeper",
		slog.String("env", cfg.Env),
		slog.String("address", cfg.Server.Address),
		slog.String("storage", cfg.Storage.Backend),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if err := app.Run(ctx); err != nil {
		return err
	}

	log.Info("linekeeper stopped")
	return nil
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "конфигурационный файл (YAML)")
	rootCmd.Flags().StringVar(&address, "address", "", "адрес TCP сервера, например :3077")
	rootCmd.Flags().StringVar(&httpAddr, "http", "", "адрес HTTP сервера состояния, пусто - выключен")
	rootCmd.Flags().StringVar(&backend, "storage", "", "хранилище: file или sqlite")
	rootCmd.Flags().StringVar(&dataDir, "data-dir", "", "каталог с данными")
}
