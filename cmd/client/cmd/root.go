// cmd/client/cmd/root.go
package cmd

import (
	"fmt"
	"os"
	"time"

	"linekeeper/cmd/client/cmd/cmdutil"
	"linekeeper/internal/client"
	"linekeeper/internal/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	serverAddr string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "linekeeper-client",
	Short: "Linekeeper - клиент текстового протокола",
	Long: `Клиент открывает одно TCP соединение на команду, отправляет одну строку
и печатает ответ сервера.`,
	PersistentPreRunE: setupClient,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupClient(cmd *cobra.Command, _ []string) error {
	config.LoadDotEnv()

	cfg, err := config.Load(config.New(), cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	address := cfg.Server.Address
	if serverAddr != "" {
		address = serverAddr
	}
	// ":3077" из серверной конфигурации означает локальный сервер.
	if len(address) > 0 && address[0] == ':' {
		address = "127.0.0.1" + address
	}

	cmd.SetContext(cmdutil.WithClient(cmd.Context(), client.New(address, timeout)))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл (YAML)")
	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "", "адрес сервера host:port")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Second, "таймаут одного запроса")
}
