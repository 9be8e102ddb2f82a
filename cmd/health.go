package cmd

import (
	"context"
	"errors"
	"os"
	"time"

	"eprel-mirror/core/eprel"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check connectivity to the EPREL API",
	Run: func(cmd *cobra.Command, args []string) {
		a := setup(true)
		defer a.log.Sync()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		ok, err := a.service.HealthCheck(ctx)
		if ok {
			a.log.Info("EPREL API is reachable")
			return
		}

		if errors.Is(err, eprel.ErrAuth) {
			a.log.Error("EPREL API rejected the configured key", zap.Error(err))
		} else {
			a.log.Error("EPREL API is unreachable", zap.Error(err))
		}
		os.Exit(1)
	},
}

func init() {
	RootCmd.AddCommand(healthCmd)
}
