package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmehdipour/customers-api/internal/config"
	httpSrv "github.com/jmehdipour/customers-api/internal/http"
	"github.com/jmehdipour/customers-api/internal/logger"
	"github.com/jmehdipour/customers-api/internal/notify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log, err := logger.Init(cfg.Log.Level, cfg.Log.Encoding)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		st, err := openStore(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer st.close()

		sender, err := newSender(cfg, log)
		if err != nil {
			return err
		}
		notifier := notify.NewNotifier(notify.NewTemplateMessageFactory(), sender, cfg.Mail.From, cfg.Mail.Subject, log)

		server := httpSrv.NewServer(cfg, st.repo, notifier, st.ready, log)

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start(cfg.HTTP.Addr)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			log.Info("signal received, shutting down", zap.String("signal", sig.String()))
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("http server exited", zap.Error(err))
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)

		return nil
	},
}

func newSender(cfg config.Config, log *zap.Logger) (notify.Sender, error) {
	switch kind := cfg.SenderKind(); kind {
	case "console":
		return notify.NewConsoleSender(log), nil
	case "smtp":
		return notify.NewSMTPSender(notify.SMTPOpts{Server: cfg.Mail.Server, Port: cfg.Mail.Port}, log), nil
	default:
		return nil, fmt.Errorf("unknown mail sender %q", kind)
	}
}
