package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncCategory    string
	syncCategories  []string
	syncNoResume    bool
	syncMaxProducts int
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync product categories from the EPREL API",
	Long: `Syncs one or more product categories into the local mirror, page by page.
Progress is checkpointed after every page; an interrupted run resumes at the
page after its last checkpoint unless --no-resume is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		a := setup(true)
		defer a.log.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		resume := !syncNoResume

		if syncCategory != "" {
			res, err := a.service.SyncCategory(ctx, syncCategory, resume, syncMaxProducts)
			if err != nil {
				a.log.Fatal("Category sync failed",
					zap.String("group", syncCategory),
					zap.Int("synced", res.Synced),
					zap.Int("failed", res.Failed),
					zap.Error(err))
			}
			a.log.Info("Category sync finished",
				zap.String("group", syncCategory),
				zap.Int("synced", res.Synced),
				zap.Int("failed", res.Failed))
			return
		}

		res, err := a.service.SyncAll(ctx, syncCategories, resume)
		if err != nil {
			a.log.Fatal("Sync interrupted",
				zap.Int("synced", res.Synced),
				zap.Int("failed", res.Failed),
				zap.Error(err))
		}
		if res.Failed > 0 {
			a.log.Warn("Sync finished with failures",
				zap.Int("synced", res.Synced),
				zap.Int("failed", res.Failed))
			return
		}
		a.log.Info("Sync finished",
			zap.Int("synced", res.Synced),
			zap.Int("failed", res.Failed))
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncCategory, "category", "", "sync a single category under its own job")
	syncCmd.Flags().StringSliceVar(&syncCategories, "categories", nil, "restrict a full sync to these categories")
	syncCmd.Flags().BoolVar(&syncNoResume, "no-resume", false, "ignore checkpoints and start every category at page 1")
	syncCmd.Flags().IntVar(&syncMaxProducts, "max-products", 0, "stop a single-category sync after this many products (0 = no cap)")
	RootCmd.AddCommand(syncCmd)
}
