package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jmehdipour/customers-api/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgPath string
	rootCmd = &cobra.Command{
		Use:   "customers",
		Short: "Customers API CLI",
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError writes err to w and to the global logger. The logger is a no-op
// until a command has initialised it.
func reportError(w io.Writer, err error) {
	logger.Log.Error("command failed", zap.Error(err))
	_ = logger.Log.Sync()
	fmt.Fprintln(w, err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}
