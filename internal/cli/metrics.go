package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/filterize/credengine/internal/engine"
	"github.com/filterize/credengine/internal/model"
)

// metricsCmd represents the metrics command
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show accumulated operation counters",
	Long: `Metrics prints the counters persisted alongside the cache:
analysis and fact-check requests, cache hits and misses, provider
calls and failures, and local fallbacks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cacheDir
		if dir == "" {
			dir = model.DefaultConfig().Cache.Dir
		}

		snapshot := engine.NewMetrics(dir).Snapshot()
		if len(snapshot) == 0 {
			fmt.Fprintln(os.Stderr, "No metrics recorded yet")
			return nil
		}

		keys := make([]string, 0, len(snapshot))
		for k := range snapshot {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Printf("%-20s %d\n", k, snapshot[k])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
	metricsCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "cache directory (default: .credengine/cache)")
}
