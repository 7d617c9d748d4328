package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"quiz-timer-service/internal/app"
	"quiz-timer-service/internal/config"
	"quiz-timer-service/internal/console"
	"quiz-timer-service/internal/infra/memory"
)

// newPlayCmd runs an interactive quiz on stdin/stdout against the same bank the server uses.
func newPlayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play a timed quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			// keep the terminal clean unless asked otherwise
			if opts.logLevel == "" {
				cfg.Log.Level = "warn"
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			b, err := connectBackends(ctx, cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			bank, err := app.LoadBank(ctx, b.questionLoader(cfg))
			if err != nil {
				return err
			}
			service := app.NewQuizService(bank, memory.NewSessionStore(), logger)
			return console.Run(ctx, service, os.Stdin, os.Stdout, console.Config{
				TimeLimit: config.TTLDuration(cfg.Quiz.QuestionTimeLimit, 30*time.Second),
			})
		},
	}
}
