package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print mirror statistics",
	Run: func(cmd *cobra.Command, args []string) {
		a := setup(false)
		defer a.log.Sync()

		stats, err := a.service.Statistics()
		if err != nil {
			a.log.Fatal("Failed to collect statistics", zap.Error(err))
		}

		fmt.Printf("products:  %d\n", stats.TotalProducts)
		fmt.Printf("suppliers: %d\n", stats.TotalSuppliers)
		if job := stats.LatestJob; job != nil && job.CompletedAt != nil {
			fmt.Printf("last sync: %s (%s, synced=%d failed=%d)\n",
				job.CompletedAt.Format("2006-01-02 15:04:05"),
				job.Status, job.SyncedProducts, job.FailedProducts)
		} else {
			fmt.Println("last sync: never")
		}
		fmt.Println()
		for _, c := range stats.ByCategory {
			fmt.Printf("%-45s %d\n", c.Code, c.Products)
		}
	},
}

func init() {
	RootCmd.AddCommand(statsCmd)
}
