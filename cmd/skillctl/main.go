package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillmatrix/skill-matrix/internal/app"
	"github.com/skillmatrix/skill-matrix/internal/config"
	"github.com/skillmatrix/skill-matrix/internal/logger"
)

var (
	application *app.App
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:           "skillctl",
	Short:         "Обслуживание матрицы навыков из командной строки",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if logLevel == "" {
			logLevel = cfg.LogLevel
		}
		logger.Init(logLevel)
		logger.SetTextFormatter()
		logger.SetOutput(cmd.ErrOrStderr())

		// CLI не рассылает события
		application, err = app.Open(cmd.Context(), cfg, nil)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "уровень логов (по умолчанию из LOG_LEVEL)")
}

// execute запускает команду и закрывает хранилище при любом исходе.
// PersistentPostRunE cobra не вызывает, если команда вернула ошибку.
func execute(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if application != nil {
		if closeErr := application.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}

func main() {
	if err := execute(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "skillctl:", err)
		os.Exit(1)
	}
}
