package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/filterize/credengine/internal/engine"
	"github.com/filterize/credengine/internal/model"
	"github.com/filterize/credengine/internal/report"
)

var (
	contentTypeFlag string
	inputFile       string
	preferFlag      string
	providerFlag    string
	outJSON         string
	outMD           string
	timeout         time.Duration
	noCache         bool
	cacheDir        string
	noFooter        bool
	knowledgePath   string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [content]",
	Short: "Estimate how likely content is AI-generated",
	Long: `Analyze runs the local detector set for the content type, fuses the
signals into a probability with confidence and explanation, and
optionally enriches the result with an external provider.

Content is passed inline, via --file for binary media, or as a URL
with --type url (the page text is fetched and scored as text).

Example:
  credengine analyze "Scientists make stunning discovery"
  credengine analyze --type image --file photo.jpg
  credengine analyze --type url https://example.com/article
  credengine analyze --prefer local "offline check"
  credengine analyze --provider openai "second opinion"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&contentTypeFlag, "type", "t", "text", "content type (text, image, video, voice, url)")
	analyzeCmd.Flags().StringVarP(&inputFile, "file", "f", "", "read content from file instead of the argument")
	analyzeCmd.Flags().StringVar(&preferFlag, "prefer", "auto", "routing preference (local, provider, auto)")
	analyzeCmd.Flags().StringVar(&providerFlag, "provider", "", "request a specific provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh analysis)")
	analyzeCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "cache directory (default: .credengine/cache)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	analyzeCmd.Flags().StringVar(&knowledgePath, "knowledge", "", "YAML knowledge table override")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	content, err := readContent(args)
	if err != nil {
		return err
	}

	ct, err := model.ParseContentType(contentTypeFlag)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig(timeout)
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing %s content (%d bytes)\n", ct, len(content))
		fmt.Fprintf(os.Stderr, "Preference: %s\n\n", preferFlag)
	}

	result, err := eng.Analyze(ctx, content, ct, engine.AnalyzeOptions{
		Prefer:   preferFlag,
		Provider: providerFlag,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	renderer := report.NewRenderer(!noFooter)
	renderer.Summary(os.Stdout, result)

	if outJSON != "" {
		if err := renderer.RenderJSON(result, outJSON); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
	}
	if outMD != "" {
		if err := renderer.RenderAnalysisMarkdown(result, outMD); err != nil {
			return fmt.Errorf("write Markdown: %w", err)
		}
	}

	return nil
}

// readContent resolves the analyze input from --file or the argument.
func readContent(args []string) ([]byte, error) {
	if inputFile != "" {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return nil, fmt.Errorf("read input file: %w", err)
		}
		return data, nil
	}
	if len(args) == 0 || args[0] == "" {
		return nil, fmt.Errorf("no content provided (pass an argument or --file)")
	}
	return []byte(args[0]), nil
}

// buildConfig folds flags and environment into the engine configuration.
func buildConfig(httpTimeout time.Duration) (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = httpTimeout
	cfg.Cache.Enabled = !noCache
	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	}
	cfg.FactCheck.KnowledgePath = knowledgePath
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	cfg.Providers.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Providers.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
		cfg.Providers.Ollama.BaseURL = baseURL
	}

	if providerFlag != "" {
		switch providerFlag {
		case "openai":
			if cfg.Providers.OpenAI.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic":
			if cfg.Providers.Anthropic.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
		default:
			return nil, fmt.Errorf("unknown provider %q (expected openai, anthropic or ollama)", providerFlag)
		}
		cfg.Providers.Default = providerFlag
	}

	return cfg, nil
}
