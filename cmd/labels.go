package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"eprel-mirror/core/storage"
	"eprel-mirror/feature/catalog/labels"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	labelsCategory string
	labelsFormat   string
	labelsLimit    int
	labelsFiches   bool
)

// labelsCmd represents the labels command
var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Archive energy label documents to object storage",
	Long: `Downloads energy labels (or product fiches) for mirrored products and
stores them in the configured bucket. Already archived documents are skipped,
so repeated runs only fetch what is missing.`,
	Run: func(cmd *cobra.Command, args []string) {
		a := setup(true)
		defer a.log.Sync()

		storeClient, err := storage.NewClient(a.cfg.Storage)
		if err != nil {
			a.log.Fatal("Failed to create storage client", zap.Error(err))
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		kind := labels.KindLabel
		if labelsFiches {
			kind = labels.KindFiche
		}

		archiver := labels.New(a.store, a.client, storeClient, a.cfg.Storage.Bucket, a.log)
		res, err := archiver.Run(ctx, labels.Options{
			GroupCode: labelsCategory,
			Format:    labelsFormat,
			Limit:     labelsLimit,
			Kind:      kind,
		})
		if err != nil {
			a.log.Fatal("Archive run failed",
				zap.Int("archived", res.Archived),
				zap.Int("failed", res.Failed),
				zap.Error(err))
		}
	},
}

func init() {
	labelsCmd.Flags().StringVar(&labelsCategory, "category", "", "archive documents for a single category")
	labelsCmd.Flags().StringVar(&labelsFormat, "format", "pdf", "document format (pdf, svg or jpg)")
	labelsCmd.Flags().IntVar(&labelsLimit, "limit", 0, "cap the number of products handled (0 = no cap)")
	labelsCmd.Flags().BoolVar(&labelsFiches, "fiches", false, "archive product fiches instead of energy labels")
	RootCmd.AddCommand(labelsCmd)
}
