package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/filterize/credengine/internal/engine"
	"github.com/filterize/credengine/internal/report"
)

var (
	fcOutJSON string
	fcOutMD   string
	fcTimeout time.Duration
	fcFile    string
)

// factcheckCmd represents the factcheck command
var factcheckCmd = &cobra.Command{
	Use:   "factcheck [text]",
	Short: "Extract and verify factual claims in text",
	Long: `Factcheck extracts checkable claims from text, verifies each against
the built-in knowledge table (falling back to a provider when one is
configured), and folds the verdicts into a 0-100 fact score with
related articles for further reading.

Example:
  credengine factcheck "The Earth is flat and vaccines cause autism"
  credengine factcheck --file article.txt --json report.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFactCheck,
}

func init() {
	rootCmd.AddCommand(factcheckCmd)

	factcheckCmd.Flags().StringVarP(&fcFile, "file", "f", "", "read text from file instead of the argument")
	factcheckCmd.Flags().StringVar(&fcOutJSON, "json", "", "output JSON path (optional)")
	factcheckCmd.Flags().StringVar(&fcOutMD, "md", "", "output Markdown path (optional)")
	factcheckCmd.Flags().DurationVar(&fcTimeout, "timeout", 2*time.Minute, "overall fact-check timeout")
	factcheckCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh check)")
	factcheckCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "cache directory (default: .credengine/cache)")
	factcheckCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	factcheckCmd.Flags().StringVar(&knowledgePath, "knowledge", "", "YAML knowledge table override")
}

func runFactCheck(cmd *cobra.Command, args []string) error {
	var text string
	switch {
	case fcFile != "":
		data, err := os.ReadFile(fcFile)
		if err != nil {
			return fmt.Errorf("read input file: %w", err)
		}
		text = string(data)
	case len(args) == 1 && args[0] != "":
		text = args[0]
	default:
		return fmt.Errorf("no text provided (pass an argument or --file)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), fcTimeout)
	defer cancel()

	cfg, err := buildConfig(fcTimeout)
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Fact-checking %d bytes of text\n\n", len(text))
	}

	result, err := eng.FactCheck(ctx, text)
	if err != nil {
		return fmt.Errorf("fact check failed: %w", err)
	}

	renderer := report.NewRenderer(!noFooter)
	renderer.FactCheckSummary(os.Stdout, result)

	if fcOutJSON != "" {
		if err := renderer.RenderJSON(result, fcOutJSON); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
	}
	if fcOutMD != "" {
		if err := renderer.RenderFactCheckMarkdown(result, fcOutMD); err != nil {
			return fmt.Errorf("write Markdown: %w", err)
		}
	}

	return nil
}
