package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/filterize/credengine/internal/engine"
	"github.com/filterize/credengine/internal/model"
	"github.com/filterize/credengine/internal/report"
	"github.com/filterize/credengine/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchType    string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple inputs from a file in parallel",
	Long: `Batch analyzes inputs concurrently:
- Read inputs from a file (one per line, # lines are comments)
- Analyze inputs in parallel with a configurable worker count
- Write an individual JSON report per input

Example:
  credengine batch samples.txt
  credengine batch urls.txt --type url --concurrency 10 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./credengine-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVarP(&batchType, "type", "t", "text", "content type of every input (text, image, video, voice, url)")
	batchCmd.Flags().StringVar(&preferFlag, "prefer", "auto", "routing preference (local, provider, auto)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh analysis)")
	batchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "cache directory (default: .credengine/cache)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	ct, err := model.ParseContentType(batchType)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig(30 * time.Second)
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	eng, err := engine.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Batch analysis: %s (%d workers, type %s)\n\n", file, concurrency, ct)

	analyzer := &batchAnalyzer{eng: eng, opts: engine.AnalyzeOptions{Prefer: preferFlag}}
	processor := worker.NewBatchProcessor(analyzer, concurrency)
	results, err := processor.ProcessFile(ctx, file, ct)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := report.NewRenderer(false)
	successCount := 0
	failureCount := 0

	for i, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", truncateInput(result.Input), result.Error)
			continue
		}
		successCount++

		jsonPath := filepath.Join(outputDir, fmt.Sprintf("%s.json", slugify(result.Input, i)))
		if err := renderer.RenderJSON(result.Result, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: write JSON: %v\n", truncateInput(result.Input), err)
			continue
		}
		fmt.Fprintf(os.Stderr, "ok   %s (probability %.2f)\n", truncateInput(result.Input), result.Result.Probability)
	}

	fmt.Fprintf(os.Stderr, "\nTotal: %d  Success: %d  Failures: %d\nOutput: %s\n",
		len(results), successCount, failureCount, outputDir)

	return nil
}

// batchAnalyzer carries the routing options into each worker job.
type batchAnalyzer struct {
	eng  *engine.Engine
	opts engine.AnalyzeOptions
}

func (a *batchAnalyzer) AnalyzeInput(ctx context.Context, input string, ct model.ContentType) (*model.CredibilityResult, error) {
	return a.eng.Analyze(ctx, []byte(input), ct, a.opts)
}

// slugify derives a stable filename from an input line.
func slugify(input string, index int) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, s)
	s = strings.Trim(s, "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	if len(s) > 60 {
		s = s[:60]
	}
	if s == "" {
		s = "input"
	}
	return fmt.Sprintf("%03d-%s", index+1, s)
}

func truncateInput(s string) string {
	if len(s) > 60 {
		return s[:57] + "..."
	}
	return s
}
